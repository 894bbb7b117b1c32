package store

import "github.com/rpupo63/notebook/models"

var seedPosts = []models.Post{
	{ID: 1, Title: "The Art of Slow Thinking", Excerpt: "In a world optimised for speed, deliberate thought is the ultimate act of rebellion. We've been conditioned to equate quickness with intelligence, but the best ideas often arrive late.", Date: "Feb 12, 2026", Tag: models.TagEssay, ReadTime: "5 min"},
	{ID: 2, Title: "Building in the Open", Excerpt: "Shipping in public is terrifying. It means your half-finished ideas are visible. It means your mistakes are logged. It also means every small win becomes a shared celebration.", Date: "Feb 10, 2026", Tag: models.TagDev, ReadTime: "3 min"},
	{ID: 3, Title: "On Walking Without a Destination", Excerpt: "The Japanese have a concept for aimless wandering that clears the mind. No AirPods, no podcast, no agenda. Just streets and sky and the quiet hum of being somewhere.", Date: "Feb 7, 2026", Tag: models.TagLife, ReadTime: "4 min"},
	{ID: 4, Title: "Why I Deleted My Notion", Excerpt: "Productivity systems are a form of procrastination with better aesthetics. I spent three years building the perfect second brain and produced almost nothing inside it.", Date: "Feb 3, 2026", Tag: models.TagEssay, ReadTime: "6 min"},
	{ID: 5, Title: "The Camera Roll as Archive", Excerpt: "Every photograph is a small act of grieving. You are acknowledging that this moment, unrepeatable, is already passing as you press the shutter.", Date: "Jan 29, 2026", Tag: models.TagLife, ReadTime: "3 min"},
	{ID: 6, Title: "Static Sites and the Joy of Boring Tech", Excerpt: "New frameworks promise salvation. But a plain HTML file served from a CDN has never betrayed me. Boring technology is a feature, not a flaw.", Date: "Jan 24, 2026", Tag: models.TagDev, ReadTime: "4 min"},
	{ID: 7, Title: "Reading in Cursive", Excerpt: "Handwriting slows you down. Slowing down makes you notice. Noticing makes you remember. There's a case to be made for analog annotation in a digital reading life.", Date: "Jan 20, 2026", Tag: models.TagEssay, ReadTime: "5 min"},
	{ID: 8, Title: "The Algorithm Doesn't Know You", Excerpt: "It knows your patterns. It knows your triggers. But the self that sits outside your habits, the version of you that surprises even yourself, remains invisible to it.", Date: "Jan 15, 2026", Tag: models.TagLife, ReadTime: "4 min"},
}

// SeedPosts returns the demo collection used by the offline store, newest
// first.
func SeedPosts() []models.Post {
	return append([]models.Post(nil), seedPosts...)
}
