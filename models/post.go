package models

import (
	"strings"
	"time"
)

// DateLayout is the display format of Post.Date, e.g. "Feb 12, 2026".
const DateLayout = "Jan 2, 2006"

// Post represents a single blog entry
type Post struct {
	ID            int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Title         string    `json:"title" db:"title" gorm:"type:text;not null"`
	Excerpt       string    `json:"excerpt" db:"contents" gorm:"column:contents;type:text;not null"`
	Date          string    `json:"date" db:"date" gorm:"type:text;not null"`
	Tag           Tag       `json:"tag" db:"tag" gorm:"type:text;not null;default:Essay"`
	ReadTime      string    `json:"readTime" db:"read_time" gorm:"type:text;not null"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at" gorm:"autoCreateTime;index:idx_post_user_created,priority:2"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt" db:"last_updated_at" gorm:"column:last_updated_at;autoUpdateTime"`
	UserID        int64     `json:"-" db:"user_id" gorm:"not null;index:idx_post_user_created,priority:1"`
}

// NewPost builds a post stamped with the given creation time. Derived fields
// are computed from the title and the (defaulted) excerpt.
func NewPost(id int64, title, excerpt string, now time.Time) Post {
	p := Post{
		ID:        id,
		Date:      now.Format(DateLayout),
		CreatedAt: now,
	}
	p.Revise(title, excerpt)
	return p
}

// Revise replaces the title and excerpt and recomputes tag and read time.
// ID, Date and ownership are left untouched. Callers trim the title.
func (p *Post) Revise(title, excerpt string) {
	p.Title = title
	p.Excerpt = DefaultExcerpt(excerpt)
	text := p.Title + " " + p.Excerpt
	p.Tag = InferTag(text)
	p.ReadTime = EstimateReadTime(text)
}

// PostInput is the request body of POST /posts and PUT /posts/{id}.
// The body text is accepted under excerpt, content or contents.
type PostInput struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt,omitempty"`
	Content  string `json:"content,omitempty"`
	Contents string `json:"contents,omitempty"`
	Tag      Tag    `json:"tag,omitempty"`
	ReadTime string `json:"readTime,omitempty"`
}

// Body returns the first non-blank body field.
func (in PostInput) Body() string {
	for _, s := range []string{in.Excerpt, in.Content, in.Contents} {
		if strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
