package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      AuthService
}

func newAuthHandler(auth AuthService, notify errorNotifier) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger).withNotifier(notify),
		logger:    logger,
		auth:      auth,
	}
}

// signup registers a new user and returns a token pair
// @Summary Sign up
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "username, email and password"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid fields"
// @Failure 409 {object} ErrorResponse "Conflict - Username or email taken"
// @Router /auth/signup [post]
func (h authHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.Credentials
		if err := h.responder.decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		resp, err := h.auth.Signup(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, resp)
	}
}

// login exchanges a username and password for a token pair
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "username and password"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} ErrorResponse "Unauthorized - Bad credentials"
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.Credentials
		if err := h.responder.decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		resp, err := h.auth.Login(r.Context(), in)
		if err != nil {
			h.logger.Info().Str("username", in.Username).Msg("failed login")
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, resp)
	}
}

// refresh trades a refresh token for a new token pair. The token may come
// in the JSON body or as the refreshToken query parameter.
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.RefreshRequest false "refresh token"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid refresh token"
// @Router /auth/refresh [post]
func (h authHandler) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("refreshToken")
		if token == "" {
			var in models.RefreshRequest
			if err := h.responder.decodeJSON(w, r, &in); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			token = strings.TrimSpace(in.RefreshToken)
		}
		if token == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("refreshToken"))
			return
		}

		resp, err := h.auth.Refresh(r.Context(), token)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, resp)
	}
}

// me returns the authenticated user's profile
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		profile, err := h.auth.Profile(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}
