package server

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthEnvelope is the response of the root route.
type HealthEnvelope struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// UserAggregateEnvelope combines the user document and the user's posts
// from two upstream calls. Both payloads are opaque, unmodified JSON.
type UserAggregateEnvelope struct {
	Message   string          `json:"message"`
	User      json.RawMessage `json:"user"`
	Posts     json.RawMessage `json:"posts"`
	Timestamp time.Time       `json:"timestamp"`
}

// CreatePostRequest is the inbound body of the create-post route.
// Missing fields simply take their zero values; the bind is lenient.
type CreatePostRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// CreatePostResultEnvelope reports the outcome of forwarding a post.
// StatusCode is the upstream's status, surfaced verbatim; the local
// response is 200 whenever the forward succeeded at the transport level.
type CreatePostResultEnvelope struct {
	Message    string          `json:"message"`
	StatusCode int             `json:"statusCode"`
	Response   json.RawMessage `json:"response"`
}

// ProblemEnvelope is the uniform failure body for both forwarding routes.
type ProblemEnvelope struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// problem writes a failure envelope carrying the error's message text.
func problem(c *gin.Context, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ProblemEnvelope{
		Message:   msg,
		Timestamp: time.Now().UTC(),
	})
}
