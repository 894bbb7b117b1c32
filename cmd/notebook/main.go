package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/rpupo63/notebook/errs"
)

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitAuthRequired = 2
	ExitUsageError   = 3
)

const loginPrompt = "You need to sign in first. Run `notebook login`."

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		cli.HandleExitCoder(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitGeneralError)
	}
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "notebook",
		Usage:     "Write, browse and edit your notebook entries",
		Version:   "0.1.0",
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		// Exit codes are handled by main so tests can run the app in process.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Value:   "http://localhost:8080/api",
				Usage:   "Backend base URL",
				EnvVars: []string{"NOTEBOOK_API_URL"},
			},
			&cli.StringFlag{
				Name:    "session",
				Value:   defaultSessionPath(),
				Usage:   "Session file path",
				EnvVars: []string{"NOTEBOOK_SESSION"},
			},
			&cli.BoolFlag{
				Name:  "offline",
				Usage: "Use a local demo notebook instead of the backend",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug output to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "signup",
				Usage: "Create an account and sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true, EnvVars: []string{"NOTEBOOK_PASSWORD"}},
				},
				Action: signup,
			},
			{
				Name:  "login",
				Usage: "Sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true, EnvVars: []string{"NOTEBOOK_PASSWORD"}},
				},
				Action: login,
			},
			{
				Name:   "logout",
				Usage:  "Sign out and forget the saved session",
				Action: logout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the signed-in user",
				Action: whoami,
			},
			{
				Name:  "posts",
				Usage: "List entries, newest first",
				Flags: []cli.Flag{
					pageFlag(),
				},
				Action: listPosts,
			},
			{
				Name:  "add",
				Usage: "Publish a new entry",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true},
					&cli.StringFlag{Name: "excerpt", Aliases: []string{"e"}},
				},
				Action: addPost,
			},
			{
				Name:      "edit",
				Usage:     "Edit an entry on the given page",
				ArgsUsage: "<post-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true},
					&cli.StringFlag{Name: "excerpt", Aliases: []string{"e"}},
					pageFlag(),
				},
				Action: editPost,
			},
			{
				Name:      "delete",
				Usage:     "Delete an entry on the given page",
				ArgsUsage: "<post-id>",
				Flags: []cli.Flag{
					pageFlag(),
				},
				Action: deletePost,
			},
			{
				Name:   "shell",
				Usage:  "Browse and edit interactively",
				Action: runShell,
			},
		},
	}
}

func pageFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "page",
		Aliases: []string{"n"},
		Value:   1,
		Usage:   "Page number, starting at 1",
	}
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "notebook-session.json"
	}
	return filepath.Join(home, ".notebook", "session.json")
}

func parseID(c *cli.Context) (int64, error) {
	if c.NArg() < 1 {
		return 0, cli.Exit(fmt.Sprintf("Usage: notebook %s [options] <post-id>", c.Command.Name), ExitUsageError)
	}
	id, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil || id <= 0 {
		return 0, cli.Exit(fmt.Sprintf("Invalid post id %q", c.Args().Get(0)), ExitUsageError)
	}
	return id, nil
}

// exitError turns a failure into an exit code. Backend errors carry a
// user-facing message already.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errs.IsAuthRequired(err):
		return cli.Exit(loginPrompt, ExitAuthRequired)
	case errs.IsValidation(err):
		return cli.Exit(err.Error(), ExitUsageError)
	default:
		return cli.Exit(err.Error(), ExitGeneralError)
	}
}
