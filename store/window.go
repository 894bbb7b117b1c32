package store

import "github.com/rpupo63/notebook/models"

// totalPages is ceil(n/size), never less than 1.
func totalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// clampPage forces page into [1, total].
func clampPage(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// window returns a copy of posts[(page-1)*size : page*size], cut to the
// list's bounds.
func window(posts []models.Post, page, size int) []models.Post {
	start := (page - 1) * size
	if start < 0 || start >= len(posts) {
		return []models.Post{}
	}
	end := start + size
	if end > len(posts) {
		end = len(posts)
	}
	return append([]models.Post(nil), posts[start:end]...)
}

func indexOf(posts []models.Post, id int64) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}
