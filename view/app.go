package view

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/models"
	"github.com/rpupo63/notebook/store"
)

// App drives a Store from user actions. It owns only the draft text and the
// open modal; posts are always read from the store.
type App struct {
	store  store.Store
	logger zerolog.Logger

	// OnAuthRequired runs when an action needs a signed-in user.
	OnAuthRequired func()

	mu           sync.Mutex
	draftTitle   string
	draftExcerpt string
	modal        Modal
}

type AppOption func(*App)

func WithLogger(logger zerolog.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

func WithAuthRequired(fn func()) AppOption {
	return func(a *App) {
		a.OnAuthRequired = fn
	}
}

func NewApp(s store.Store, opts ...AppOption) *App {
	a := &App{
		store:  s,
		logger: zerolog.Nop(),
		modal:  NoModal{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) Store() store.Store {
	return a.store
}

func (a *App) SetDraft(title, excerpt string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.draftTitle = title
	a.draftExcerpt = excerpt
}

func (a *App) Draft() (title, excerpt string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.draftTitle, a.draftExcerpt
}

func (a *App) Modal() Modal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.modal
}

// Publish adds the draft as a new post and clears it. A blank title does
// nothing. The draft survives a failed publish.
func (a *App) Publish(ctx context.Context) error {
	title, excerpt := a.Draft()
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	if err := a.store.Add(ctx, title, strings.TrimSpace(excerpt)); err != nil {
		return a.fail(err)
	}

	a.SetDraft("", "")
	return nil
}

// OpenEdit opens the edit dialog for a post on the current page. It reports
// whether the post was found.
func (a *App) OpenEdit(id int64) bool {
	post, ok := a.visible(id)
	if !ok {
		return false
	}
	a.setModal(EditingModal{Post: post})
	return true
}

// OpenDelete opens the delete confirmation for a post on the current page.
func (a *App) OpenDelete(id int64) bool {
	post, ok := a.visible(id)
	if !ok {
		return false
	}
	a.setModal(DeletingModal{Post: post})
	return true
}

func (a *App) Dismiss() {
	a.setModal(NoModal{})
}

// SaveEdit applies the edit dialog. It does nothing unless the edit dialog
// is open and the title is non-blank. The dialog stays open on error.
func (a *App) SaveEdit(ctx context.Context, title, excerpt string) error {
	editing, ok := a.Modal().(EditingModal)
	if !ok {
		return nil
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	if err := a.store.Edit(ctx, editing.Post.ID, title, strings.TrimSpace(excerpt)); err != nil {
		return a.fail(err)
	}
	a.Dismiss()
	return nil
}

// ConfirmDelete deletes the post in the delete dialog. The dialog stays open
// on error.
func (a *App) ConfirmDelete(ctx context.Context) error {
	deleting, ok := a.Modal().(DeletingModal)
	if !ok {
		return nil
	}

	if err := a.store.Delete(ctx, deleting.Post.ID); err != nil {
		return a.fail(err)
	}
	a.Dismiss()
	return nil
}

func (a *App) ChangePage(ctx context.Context, page int) error {
	if err := a.store.ChangePage(ctx, page); err != nil {
		return a.fail(err)
	}
	return nil
}

// Render composes the header, the current page, the page bar and the open
// modal.
func (a *App) Render() string {
	snap := a.store.Snapshot()

	var b strings.Builder
	b.WriteString(RenderHeader(snap.TotalItems))
	b.WriteString("\n\n")

	if snap.Err != nil {
		b.WriteString("! ")
		b.WriteString(snap.Err.Error())
		b.WriteString("\n\n")
	}

	switch {
	case snap.Loading && len(snap.Posts) == 0:
		b.WriteString("Loading...\n")
	case len(snap.Posts) == 0:
		b.WriteString(EmptyState)
		b.WriteByte('\n')
	default:
		for i, p := range snap.Posts {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(RenderCard(p))
		}
	}

	if bar := RenderPagination(snap.Page, snap.TotalPages); bar != "" {
		b.WriteByte('\n')
		b.WriteString(bar)
		b.WriteByte('\n')
	}

	if modal := RenderModal(a.Modal()); modal != "" {
		b.WriteByte('\n')
		b.WriteString(modal)
	}
	return b.String()
}

func (a *App) visible(id int64) (post models.Post, ok bool) {
	for _, p := range a.store.Snapshot().Posts {
		if p.ID == id {
			return p, true
		}
	}
	return post, false
}

func (a *App) setModal(m Modal) {
	a.mu.Lock()
	prev := a.modal
	a.modal = m
	a.mu.Unlock()
	a.logger.Debug().Str("from", Describe(prev)).Str("to", Describe(m)).Msg("modal changed")
}

func (a *App) fail(err error) error {
	if errs.IsAuthRequired(err) && a.OnAuthRequired != nil {
		a.OnAuthRequired()
	}
	a.logger.Debug().Err(err).Msg("action failed")
	return err
}
