// Package view renders the notebook in a terminal and holds the transient
// UI state: the draft being written and the open modal.
package view

import (
	"fmt"

	"github.com/rpupo63/notebook/models"
)

// Modal is the dialog currently open. It is exactly one of NoModal,
// EditingModal and DeletingModal.
type Modal interface {
	isModal()
}

type NoModal struct{}

// EditingModal holds the post as it was when the dialog opened.
type EditingModal struct {
	Post models.Post
}

type DeletingModal struct {
	Post models.Post
}

func (NoModal) isModal()       {}
func (EditingModal) isModal()  {}
func (DeletingModal) isModal() {}

// Describe names the modal for logs and the shell prompt.
func Describe(m Modal) string {
	switch m := m.(type) {
	case NoModal:
		return "none"
	case EditingModal:
		return fmt.Sprintf("editing post %d", m.Post.ID)
	case DeletingModal:
		return fmt.Sprintf("deleting post %d", m.Post.ID)
	default:
		panic(fmt.Sprintf("view: unknown modal %T", m))
	}
}
