package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/Rrens/content-creator-bot/internal/api/middleware"
	"github.com/Rrens/content-creator-bot/internal/api/response"
	"github.com/Rrens/content-creator-bot/internal/domain"
	"github.com/Rrens/content-creator-bot/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// decode reads a JSON body into v and validates it, writing a 400 on failure
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.BadRequest(w, "invalid request body")
		return false
	}

	if err := validate.Struct(v); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make(map[string]string)
			for _, e := range validationErrors {
				switch e.Tag() {
				case "required":
					fields[e.Field()] = "field is required"
				case "max":
					fields[e.Field()] = "must be at most " + e.Param() + " characters"
				case "oneof":
					fields[e.Field()] = "must be one of: " + e.Param()
				default:
					fields[e.Field()] = "validation failed on " + e.Tag()
				}
			}
			response.BadRequest(w, fields)
			return false
		}
		response.BadRequest(w, err.Error())
		return false
	}

	return true
}

// ownedSessionID resolves the {sessionID} path parameter for the caller.
// Ids outside the caller's namespace are reported as not found.
func ownedSessionID(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return "", "", false
	}

	sessionID, err := url.PathUnescape(chi.URLParam(r, "sessionID"))
	if err != nil || !service.OwnsSession(userID, sessionID) {
		response.NotFound(w, "session not found")
		return "", "", false
	}

	return userID, sessionID, true
}

// loadOwnedSession loads the session named by the path for the caller
func loadOwnedSession(w http.ResponseWriter, r *http.Request, sessions *service.SessionStore) (*domain.Session, bool) {
	_, sessionID, ok := ownedSessionID(w, r)
	if !ok {
		return nil, false
	}

	session, err := sessions.LoadSession(r.Context(), sessionID)
	if errors.Is(err, service.ErrSessionNotFound) {
		response.NotFound(w, "session not found")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to load session")
		response.InternalError(w, "failed to load session")
		return nil, false
	}

	return session, true
}
