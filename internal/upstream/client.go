// Package upstream is the client for the fixed public JSON test API the
// service forwards to. Upstream documents are never modeled as typed
// structs; they flow through as opaque json.RawMessage values.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/wesleyorama2/ferry/internal/httpc"
	"github.com/wesleyorama2/ferry/internal/metrics"
)

// Outbound endpoint names used for logging and metrics.
const (
	endpointUsers      = "users"
	endpointPosts      = "posts"
	endpointCreatePost = "create-post"
)

// Client issues calls against the upstream API. It is safe for
// concurrent use; the underlying HTTP client owns connection pooling.
type Client struct {
	httpc *httpc.Client
	log   *zap.Logger
	rec   *metrics.Recorder
}

// NewPost is the payload shape the upstream expects for post creation.
// Field order and naming are fixed regardless of how the inbound
// request spelled them.
type NewPost struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// New creates an upstream client on top of the given HTTP client.
func New(client *httpc.Client, log *zap.Logger, rec *metrics.Recorder) *Client {
	return &Client{
		httpc: client,
		log:   log,
		rec:   rec,
	}
}

// UserByID fetches /users/{id} and returns the body as an opaque JSON
// document. Any transport failure or non-2xx status is returned as an
// error; no retries.
func (c *Client) UserByID(ctx context.Context, id int) (json.RawMessage, error) {
	req := httpc.NewRequest("GET", "/users/"+strconv.Itoa(id))

	body, err := c.getJSON(ctx, endpointUsers, req)
	if err != nil {
		return nil, err
	}

	if name := gjson.GetBytes(body, "name"); name.Exists() {
		c.log.Debug("fetched upstream user",
			zap.Int("id", id),
			zap.String("name", name.String()))
	}

	return body, nil
}

// PostsByUser fetches /posts?userId={id} and returns the body as an
// opaque JSON document.
func (c *Client) PostsByUser(ctx context.Context, id int) (json.RawMessage, error) {
	req := httpc.NewRequest("GET", "/posts").
		WithQueryParam("userId", strconv.Itoa(id))

	body, err := c.getJSON(ctx, endpointPosts, req)
	if err != nil {
		return nil, err
	}

	c.log.Debug("fetched upstream posts",
		zap.Int("userId", id),
		zap.Int("count", len(gjson.ParseBytes(body).Array())))

	return body, nil
}

// CreatePost forwards a post to POST /posts. Unlike the GET operations,
// a non-2xx upstream status is not an error here: the status code is
// part of the result and is surfaced verbatim to the caller.
func (c *Client) CreatePost(ctx context.Context, post NewPost) (int, json.RawMessage, error) {
	req := httpc.NewRequest("POST", "/posts").
		WithBody(post)

	start := time.Now()
	resp, err := c.httpc.Do(ctx, req)
	c.record(endpointCreatePost, start, resp, err)
	if err != nil {
		return 0, nil, fmt.Errorf("upstream POST /posts: %w", err)
	}

	body, err := resp.GetBody()
	if err != nil {
		return 0, nil, fmt.Errorf("upstream POST /posts: reading body: %w", err)
	}

	if !gjson.ValidBytes(body) {
		return 0, nil, fmt.Errorf("upstream POST /posts: response is not valid JSON")
	}

	c.log.Debug("forwarded post upstream",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", resp.Timing.TotalTime))

	return resp.StatusCode, json.RawMessage(body), nil
}

// getJSON executes a GET request and enforces the shared policy for the
// aggregation endpoints: non-2xx statuses and invalid JSON bodies are
// errors.
func (c *Client) getJSON(ctx context.Context, endpoint string, req *httpc.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpc.Do(ctx, req)
	c.record(endpoint, start, resp, err)
	if err != nil {
		return nil, fmt.Errorf("upstream GET %s: %w", req.Path, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("upstream GET %s: unexpected status %s", req.Path, resp.Status)
	}

	body, err := resp.GetBody()
	if err != nil {
		return nil, fmt.Errorf("upstream GET %s: reading body: %w", req.Path, err)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("upstream GET %s: response is not valid JSON", req.Path)
	}

	return body, nil
}

// record feeds the metrics recorder and the access log for one outbound
// call. A call counts as failed on transport error or 5xx/4xx status
// for the GET endpoints; create-post only fails on transport errors.
func (c *Client) record(endpoint string, start time.Time, resp *httpc.Response, err error) {
	latency := time.Since(start)
	failed := err != nil
	status := 0

	if resp != nil {
		latency = resp.Timing.TotalTime
		status = resp.StatusCode
		if endpoint != endpointCreatePost && !resp.IsSuccess() {
			failed = true
		}
	}

	if c.rec != nil {
		c.rec.Record(endpoint, latency, failed)
	}

	if err != nil {
		c.log.Warn("outbound call failed",
			zap.String("endpoint", endpoint),
			zap.Duration("duration", latency),
			zap.Error(err))
		return
	}

	c.log.Info("outbound call",
		zap.String("endpoint", endpoint),
		zap.Int("status", status),
		zap.Duration("duration", latency))
}
