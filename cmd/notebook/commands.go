package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func signup(c *cli.Context) error {
	e := newEnv(c)
	if err := e.session.Register(c.Context, c.String("username"), c.String("email"), c.String("password")); err != nil {
		return exitError(err)
	}
	user, _ := e.session.User()
	fmt.Fprintf(e.out, "Welcome, %s.\n", user.Username)
	return nil
}

func login(c *cli.Context) error {
	e := newEnv(c)
	if err := e.session.Login(c.Context, c.String("username"), c.String("password")); err != nil {
		return exitError(err)
	}
	user, _ := e.session.User()
	fmt.Fprintf(e.out, "Signed in as %s.\n", user.Username)
	return nil
}

func logout(c *cli.Context) error {
	e := newEnv(c)
	if err := e.session.Logout(); err != nil {
		return exitError(err)
	}
	fmt.Fprintln(e.out, "Signed out.")
	return nil
}

func whoami(c *cli.Context) error {
	e := newEnv(c)
	user, ok := e.session.User()
	if !ok {
		return cli.Exit(loginPrompt, ExitAuthRequired)
	}
	fmt.Fprintf(e.out, "%s <%s>\n", user.Username, user.Email)
	return nil
}

func listPosts(c *cli.Context) error {
	e := newEnv(c)
	if err := e.load(c.Context, c.Int("page")); err != nil {
		return exitError(err)
	}
	e.render()
	return nil
}

func addPost(c *cli.Context) error {
	e := newEnv(c)
	if err := e.load(c.Context, 1); err != nil {
		return exitError(err)
	}

	e.app.SetDraft(c.String("title"), c.String("excerpt"))
	if err := e.app.Publish(c.Context); err != nil {
		return exitError(err)
	}
	e.render()
	return nil
}

func editPost(c *cli.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	e := newEnv(c)
	page := c.Int("page")
	if err := e.load(c.Context, page); err != nil {
		return exitError(err)
	}

	if !e.app.OpenEdit(id) {
		return cli.Exit(fmt.Sprintf("Post %d is not on page %d", id, page), ExitUsageError)
	}
	if err := e.app.SaveEdit(c.Context, c.String("title"), c.String("excerpt")); err != nil {
		return exitError(err)
	}
	e.render()
	return nil
}

func deletePost(c *cli.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	e := newEnv(c)
	page := c.Int("page")
	if err := e.load(c.Context, page); err != nil {
		return exitError(err)
	}

	if !e.app.OpenDelete(id) {
		return cli.Exit(fmt.Sprintf("Post %d is not on page %d", id, page), ExitUsageError)
	}
	if err := e.app.ConfirmDelete(c.Context); err != nil {
		return exitError(err)
	}
	e.render()
	return nil
}
