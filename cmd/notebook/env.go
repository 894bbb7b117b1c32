package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/rpupo63/notebook/client"
	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/session"
	"github.com/rpupo63/notebook/store"
	"github.com/rpupo63/notebook/view"
)

// env is everything a command needs, built from the global flags.
type env struct {
	logger  zerolog.Logger
	session *session.Session
	remote  *store.RemoteStore
	app     *view.App
	offline bool
	out     io.Writer
}

func newEnv(c *cli.Context) *env {
	level := zerolog.WarnLevel
	if c.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: c.App.ErrWriter}).
		Level(level).
		With().Timestamp().Logger()

	api := client.New(c.String("api"), client.WithLogger(logger.With().Str("component", "client").Logger()))
	sess := session.New(api, c.String("session"), session.WithLogger(logger.With().Str("component", "session").Logger()))
	if err := sess.Restore(); err != nil {
		logger.Warn().Err(err).Msg("ignoring unreadable session file")
	}

	e := &env{
		logger:  logger,
		session: sess,
		offline: c.Bool("offline"),
		out:     c.App.Writer,
	}

	var s store.Store
	if e.offline {
		s = store.NewMemoryStore(
			store.WithPosts(store.SeedPosts()),
			store.WithMemoryLogger(logger.With().Str("component", "store").Logger()),
		)
	} else {
		e.remote = store.NewRemoteStore(api, sess, store.WithRemoteLogger(logger.With().Str("component", "store").Logger()))
		s = e.remote
		sess.Subscribe(func(session.State) {
			if err := e.remote.TokenChanged(c.Context); err != nil {
				logger.Warn().Err(err).Msg("failed to reload posts after sign in change")
			}
		})
	}

	e.app = view.NewApp(s, view.WithLogger(logger.With().Str("component", "view").Logger()))
	return e
}

// load refreshes the store and moves to page. Backend commands need a
// signed-in session; offline ones do not. A rejected access token is renewed
// once.
func (e *env) load(ctx context.Context, page int) error {
	if !e.offline && !e.session.State().SignedIn() {
		return errs.ErrAuthRequired
	}
	err := e.app.Store().Refresh(ctx)
	if errs.IsAuthRequired(err) && !e.offline {
		// Expired access token: try the refresh token once. The new token
		// reaches the store through the session subscriber, which reloads.
		if renewErr := e.session.Renew(ctx); renewErr != nil {
			e.logger.Debug().Err(renewErr).Msg("session renewal failed")
			return err
		}
		err = e.app.Store().Snapshot().Err
	}
	if err != nil {
		return err
	}
	if page > 1 {
		return e.app.ChangePage(ctx, page)
	}
	return nil
}

func (e *env) render() {
	io.WriteString(e.out, e.app.Render())
}
