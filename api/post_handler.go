package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     PostService
}

func newPostHandler(posts PostService, notify errorNotifier) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger).withNotifier(notify),
		logger:    logger,
		posts:     posts,
	}
}

// listPosts returns one page of the caller's posts
// @Summary List my posts
// @Tags Posts
// @Produce json
// @Param page query int false "0-indexed page" default(0)
// @Param size query int false "Page size" default(10)
// @Param sort query string false "field,direction" default(createdAt,desc)
// @Success 200 {object} models.Page[models.Post]
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid paging parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /posts [get]
func (h postHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		req, err := parsePageRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.posts.List(r.Context(), userID, req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// createPost creates a post owned by the caller
// @Summary Create post
// @Tags Posts
// @Accept json
// @Produce json
// @Param post body models.PostInput true "Post data"
// @Success 200 {object} models.Post
// @Failure 400 {object} ErrorResponse "Bad Request - Missing title"
// @Router /posts [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var in models.PostInput
		if err := h.responder.decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.Create(r.Context(), userID, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// updatePost replaces the title and body of one of the caller's posts
// @Summary Update post
// @Tags Posts
// @Accept json
// @Produce json
// @Param postID path int true "Post ID"
// @Param post body models.PostInput true "Post data"
// @Success 200 {object} models.Post
// @Failure 403 {object} ErrorResponse "Forbidden - Not the owner"
// @Failure 404 {object} ErrorResponse "Not Found - Post not found"
// @Router /posts/{postID} [put]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		postID, err := parseIDParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in models.PostInput
		if err := h.responder.decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.Update(r.Context(), userID, postID, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// deletePost deletes one of the caller's posts
// @Summary Delete post
// @Tags Posts
// @Param postID path int true "Post ID"
// @Success 204
// @Failure 403 {object} ErrorResponse "Forbidden - Not the owner"
// @Failure 404 {object} ErrorResponse "Not Found - Post not found"
// @Router /posts/{postID} [delete]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		postID, err := parseIDParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.posts.Delete(r.Context(), userID, postID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteNoContent(w)
	}
}

func parsePageRequest(r *http.Request) (models.PageRequest, error) {
	q := r.URL.Query()
	req := models.PageRequest{Sort: q.Get("sort")}

	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &req.Page}, {"size", &req.Size}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, errs.NewInvalidFieldError(p.name, "must be an integer")
		}
		*p.dst = n
	}
	return req, nil
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, errs.NewMissingRequiredFieldError(name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewInvalidFieldError(name, "must be an integer")
	}
	return id, nil
}
