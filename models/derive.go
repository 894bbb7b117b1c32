package models

import (
	"fmt"
	"math"
	"strings"
)

// PlaceholderExcerpt replaces an empty excerpt.
const PlaceholderExcerpt = "No excerpt provided."

// WordsPerMinute is the reading speed used by EstimateReadTime.
const WordsPerMinute = 200

var (
	devKeywords  = []string{"code", "dev", "ship", "build", "tech", "js", "css", "html", "api"}
	lifeKeywords = []string{"walk", "life", "feel", "day", "morning", "night", "friend", "family"}
)

// InferTag picks a tag from free text. Keywords match as substrings of the
// lower-cased text and Dev is checked before Life.
func InferTag(text string) Tag {
	t := strings.ToLower(text)
	if containsAny(t, devKeywords) {
		return TagDev
	}
	if containsAny(t, lifeKeywords) {
		return TagLife
	}
	return TagEssay
}

// EstimateReadTime returns the reading time of text as "<n> min", never less
// than one minute.
func EstimateReadTime(text string) string {
	words := len(strings.Fields(text))
	minutes := int(math.Round(float64(words) / WordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min", minutes)
}

// DefaultExcerpt substitutes the placeholder for a blank excerpt.
func DefaultExcerpt(s string) string {
	if strings.TrimSpace(s) == "" {
		return PlaceholderExcerpt
	}
	return s
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
