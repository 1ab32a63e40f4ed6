// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response utilities shared by all endpoints. Every
// failure, from a malformed body to a missing row, is answered with the
// same envelope:
//
//	HTTP/1.1 404 Not Found
//	{ "error": "This title doesn't exist" }
//
// fail() centralizes that shape and logs 5xx responses with request
// context; ok() writes success bodies.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MajewskiMichal/RadioHitsManager/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Human-readable message, safe to show to users.
	Error string `json:"error" example:"This title doesn't exist"`
}

// fail aborts the request with the standard error envelope. Server errors
// (>= 500) are logged with the request-scoped logger.
func fail(c *gin.Context, status int, msg string) {
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// Fail is the exported variant of fail(), for router-level fallbacks
// (NoRoute, NoMethod) that live outside this package.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg) }

// ok writes a success JSON response with the given status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
