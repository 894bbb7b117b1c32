package api

import (
	"net/http"

	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     UserService
}

func newUserHandler(users UserService, notify errorNotifier) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger).withNotifier(notify),
		logger:    logger,
		users:     users,
	}
}

// updateUser changes the caller's own account
// @Summary Update account
// @Tags Users
// @Accept json
// @Produce json
// @Param userID path int true "User ID"
// @Param user body models.Credentials true "username, email and optional password"
// @Success 200 {object} models.Profile
// @Failure 403 {object} ErrorResponse "Forbidden - Not your account"
// @Failure 409 {object} ErrorResponse "Conflict - Username or email taken"
// @Router /users/{userID} [put]
func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		userID, err := parseIDParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in models.Credentials
		if err := h.responder.decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profile, err := h.users.Update(r.Context(), callerID, userID, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}

// deleteUser removes the caller's own account and posts
// @Summary Delete account
// @Tags Users
// @Param userID path int true "User ID"
// @Success 204
// @Failure 403 {object} ErrorResponse "Forbidden - Not your account"
// @Router /users/{userID} [delete]
func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		userID, err := parseIDParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.users.Delete(r.Context(), callerID, userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteNoContent(w)
	}
}
