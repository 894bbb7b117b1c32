package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/rpupo63/notebook/view"
)

const shellHelp = `Commands:
  add <title> [| <excerpt>]   publish a new entry
  edit <id>                   open the edit dialog
  save <title> [| <excerpt>]  save the open edit dialog
  delete <id>                 open the delete dialog
  yes | no                    confirm or dismiss the open dialog
  page <n> | next | prev      change page
  refresh                     reload the current page
  logout                      sign out
  help                        show this help
  quit                        leave the shell`

func runShell(c *cli.Context) error {
	e := newEnv(c)
	if err := e.load(c.Context, 1); err != nil {
		return exitError(err)
	}
	e.app.OnAuthRequired = func() {
		fmt.Fprintln(e.out, loginPrompt)
	}

	e.render()
	scanner := bufio.NewScanner(c.App.Reader)
	for {
		fmt.Fprintf(e.out, "\n%s> ", promptFor(e.app.Modal()))
		if !scanner.Scan() {
			break
		}
		quit, err := e.exec(c.Context, strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintf(e.out, "! %v\n", err)
		}
		if quit {
			return nil
		}
		e.render()
	}
	return scanner.Err()
}

func promptFor(m view.Modal) string {
	switch m.(type) {
	case view.EditingModal:
		return "notebook (editing)"
	case view.DeletingModal:
		return "notebook (delete? yes/no)"
	default:
		return "notebook"
	}
}

// exec runs one shell line and reports whether the shell should exit.
func (e *env) exec(ctx context.Context, line string) (bool, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(e.out, shellHelp)
		return false, nil
	case "add":
		title, excerpt := splitEntry(rest)
		e.app.SetDraft(title, excerpt)
		return false, e.app.Publish(ctx)
	case "edit":
		id, err := parseShellID(rest)
		if err != nil {
			return false, err
		}
		if !e.app.OpenEdit(id) {
			return false, fmt.Errorf("post %d is not on this page", id)
		}
		return false, nil
	case "save":
		if _, ok := e.app.Modal().(view.EditingModal); !ok {
			return false, fmt.Errorf("no post is being edited")
		}
		title, excerpt := splitEntry(rest)
		return false, e.app.SaveEdit(ctx, title, excerpt)
	case "delete":
		id, err := parseShellID(rest)
		if err != nil {
			return false, err
		}
		if !e.app.OpenDelete(id) {
			return false, fmt.Errorf("post %d is not on this page", id)
		}
		return false, nil
	case "yes":
		return false, e.app.ConfirmDelete(ctx)
	case "no", "cancel":
		e.app.Dismiss()
		return false, nil
	case "page":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return false, fmt.Errorf("invalid page %q", rest)
		}
		return false, e.app.ChangePage(ctx, n)
	case "next":
		return false, e.app.ChangePage(ctx, e.app.Store().Snapshot().Page+1)
	case "prev":
		return false, e.app.ChangePage(ctx, e.app.Store().Snapshot().Page-1)
	case "refresh":
		return false, e.app.Store().Refresh(ctx)
	case "logout":
		if e.offline {
			return false, fmt.Errorf("not signed in while offline")
		}
		e.app.Dismiss()
		return false, e.session.Logout()
	default:
		return false, fmt.Errorf("unknown command %q, try help", cmd)
	}
}

// splitEntry splits "title | excerpt".
func splitEntry(s string) (title, excerpt string) {
	title, excerpt, _ = strings.Cut(s, "|")
	return strings.TrimSpace(title), strings.TrimSpace(excerpt)
}

func parseShellID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", s)
	}
	return id, nil
}
