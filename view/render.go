package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rpupo63/notebook/models"
)

const (
	Title      = "The Notebook"
	EmptyState = "Nothing To See Here Yet..."

	wrapWidth = 72
)

// RenderHeader prints the title and the entry count.
func RenderHeader(totalItems int) string {
	noun := "entries"
	if totalItems == 1 {
		noun = "entry"
	}
	return fmt.Sprintf("%s · %d %s", Title, totalItems, noun)
}

// RenderCard prints one post: id, title and tag, the wrapped excerpt, then
// date and read time.
func RenderCard(p models.Post) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d  %s  [%s]\n", p.ID, p.Title, p.Tag)
	for _, line := range wrap(p.Excerpt, wrapWidth) {
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "    %s · %s read\n", p.Date, p.ReadTime)
	return b.String()
}

// RenderPagination prints the page bar, or nothing for a single page.
// Disabled prev and next are shown in parentheses.
func RenderPagination(page, totalPages int) string {
	if totalPages <= 1 {
		return ""
	}

	parts := make([]string, 0, totalPages+2)
	if page <= 1 {
		parts = append(parts, "(prev)")
	} else {
		parts = append(parts, "< prev")
	}
	for p := 1; p <= totalPages; p++ {
		if p == page {
			parts = append(parts, "["+strconv.Itoa(p)+"]")
		} else {
			parts = append(parts, strconv.Itoa(p))
		}
	}
	if page >= totalPages {
		parts = append(parts, "(next)")
	} else {
		parts = append(parts, "next >")
	}
	return strings.Join(parts, " ")
}

func RenderModal(m Modal) string {
	switch m := m.(type) {
	case NoModal:
		return ""
	case EditingModal:
		var b strings.Builder
		fmt.Fprintf(&b, "Edit post #%d\n", m.Post.ID)
		fmt.Fprintf(&b, "  Title:   %s\n", m.Post.Title)
		fmt.Fprintf(&b, "  Excerpt: %s\n", m.Post.Excerpt)
		b.WriteString("  [save] Save changes  [no] Cancel\n")
		return b.String()
	case DeletingModal:
		var b strings.Builder
		b.WriteString("Delete this post?\n")
		fmt.Fprintf(&b, "  %q will be permanently removed. This cannot be undone.\n", m.Post.Title)
		b.WriteString("  [yes] Delete  [no] Cancel\n")
		return b.String()
	default:
		panic(fmt.Sprintf("view: unknown modal %T", m))
	}
}

// wrap breaks text into lines of at most width runes, splitting on spaces.
// A single word longer than width gets a line of its own.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
