package models

import "fmt"

// Tag is the topical category of a post
type Tag string

const (
	TagEssay Tag = "Essay"
	TagDev   Tag = "Dev"
	TagLife  Tag = "Life"
)

// Tags lists every valid tag.
var Tags = []Tag{TagEssay, TagDev, TagLife}

func (t Tag) Valid() bool {
	switch t {
	case TagEssay, TagDev, TagLife:
		return true
	}
	return false
}

func (t Tag) String() string {
	return string(t)
}

// ParseTag converts s into a Tag. Matching is exact.
func ParseTag(s string) (Tag, error) {
	t := Tag(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown tag %q", s)
	}
	return t, nil
}
