package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wesleyorama2/ferry/internal/upstream"
)

const healthMessage = "ferry is up"

// Handler holds the dependencies of all route handlers. Handlers keep
// no state of their own; everything is request scoped.
type Handler struct {
	upstream *upstream.Client
	log      *zap.Logger
}

// NewHandler creates the route handler set.
func NewHandler(client *upstream.Client, log *zap.Logger) *Handler {
	return &Handler{
		upstream: client,
		log:      log,
	}
}

// Health answers GET / with a static message and the current UTC time.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthEnvelope{
		Message:   healthMessage,
		Timestamp: time.Now().UTC(),
	})
}

// UserAggregate answers GET /api/user/:id. It fetches the user document
// and then the user's posts, strictly in that order; if the first call
// fails the second is never issued and no partial envelope is returned.
func (h *Handler) UserAggregate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		problem(c, http.StatusBadRequest, fmt.Errorf("user id must be an integer: %q", c.Param("id")))
		return
	}

	ctx := c.Request.Context()

	user, err := h.upstream.UserByID(ctx, id)
	if err != nil {
		problem(c, http.StatusBadGateway, err)
		return
	}

	posts, err := h.upstream.PostsByUser(ctx, id)
	if err != nil {
		problem(c, http.StatusBadGateway, err)
		return
	}

	c.JSON(http.StatusOK, UserAggregateEnvelope{
		Message:   fmt.Sprintf("aggregated data for user %d", id),
		User:      user,
		Posts:     posts,
		Timestamp: time.Now().UTC(),
	})
}

// CreatePost answers POST /api/create-post. The inbound body is bound
// leniently: absent fields keep their zero values and a field of the
// wrong type coerces to its zero value instead of failing the request.
// Only an unreadable or syntactically broken body is rejected.
func (h *Handler) CreatePost(c *gin.Context) {
	req, err := bindCreatePost(c.Request.Body)
	if err != nil {
		problem(c, http.StatusBadRequest, err)
		return
	}

	status, body, err := h.upstream.CreatePost(c.Request.Context(), upstream.NewPost{
		Title:  req.Title,
		Body:   req.Body,
		UserID: req.UserID,
	})
	if err != nil {
		problem(c, http.StatusBadGateway, err)
		return
	}

	// Local status is 200 regardless of the upstream's own status; the
	// upstream status travels as data
	c.JSON(http.StatusOK, CreatePostResultEnvelope{
		Message:    "post forwarded upstream",
		StatusCode: status,
		Response:   body,
	})
}

// bindCreatePost decodes the request body, tolerating type mismatches
// (the mismatched field is left at its zero value) and an empty body.
func bindCreatePost(r io.Reader) (CreatePostRequest, error) {
	var req CreatePostRequest

	if r == nil {
		return req, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return req, fmt.Errorf("reading request body: %w", err)
	}

	if len(data) == 0 {
		return req, nil
	}

	if err := json.Unmarshal(data, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return req, nil
		}
		return req, fmt.Errorf("parsing request body: %w", err)
	}

	return req, nil
}
