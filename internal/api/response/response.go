package response

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Response is the envelope every JSON endpoint answers with
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Debug().Err(err).Int("status", status).Msg("failed to write response")
	}
}

// JSON sends data wrapped in the envelope; success follows the status class.
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, Response{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// Error sends an error envelope. message may be a string or a field map.
func Error(w http.ResponseWriter, status int, message any) {
	write(w, status, Response{Error: message})
}

// Attachment sends body as a downloadable plain text file
func Attachment(w http.ResponseWriter, filename, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Debug().Err(err).Str("filename", filename).Msg("failed to write attachment")
	}
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func BadRequest(w http.ResponseWriter, message any) {
	Error(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message any) {
	Error(w, http.StatusUnauthorized, message)
}

func NotFound(w http.ResponseWriter, message any) {
	Error(w, http.StatusNotFound, message)
}

// TooManyRequests is sent by the rate limiter
func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "rate limit exceeded")
}

// NotImplemented marks a feature switched off by configuration
func NotImplemented(w http.ResponseWriter, message any) {
	Error(w, http.StatusNotImplemented, message)
}

func ServiceUnavailable(w http.ResponseWriter, message any) {
	Error(w, http.StatusServiceUnavailable, message)
}

func InternalError(w http.ResponseWriter, message any) {
	Error(w, http.StatusInternalServerError, message)
}
