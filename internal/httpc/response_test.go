package httpc

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestResponse_GetBody(t *testing.T) {
	resp := &Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{"id":1}`)),
	}

	body, err := resp.GetBody()
	if err != nil {
		t.Fatalf("Error reading body: %v", err)
	}
	if string(body) != `{"id":1}` {
		t.Errorf("Expected body, got %s", string(body))
	}

	// Second read must come from the cache
	body2, err := resp.GetBody()
	if err != nil {
		t.Fatalf("Error reading cached body: %v", err)
	}
	if string(body2) != `{"id":1}` {
		t.Errorf("Expected cached body, got %s", string(body2))
	}
}

func TestResponse_GetBodyAsJSON(t *testing.T) {
	resp := &Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{"id":1,"name":"Leanne"}`)),
	}

	var doc struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := resp.GetBodyAsJSON(&doc); err != nil {
		t.Fatalf("Error unmarshaling body: %v", err)
	}

	if doc.ID != 1 || doc.Name != "Leanne" {
		t.Errorf("Unexpected decoded document: %+v", doc)
	}
}

func TestResponse_StatusHelpers(t *testing.T) {
	tests := []struct {
		status      int
		success     bool
		clientError bool
		serverError bool
	}{
		{200, true, false, false},
		{201, true, false, false},
		{404, false, true, false},
		{500, false, false, true},
		{502, false, false, true},
	}

	for _, tt := range tests {
		resp := &Response{StatusCode: tt.status}
		if resp.IsSuccess() != tt.success {
			t.Errorf("IsSuccess for %d: expected %v", tt.status, tt.success)
		}
		if resp.IsClientError() != tt.clientError {
			t.Errorf("IsClientError for %d: expected %v", tt.status, tt.clientError)
		}
		if resp.IsServerError() != tt.serverError {
			t.Errorf("IsServerError for %d: expected %v", tt.status, tt.serverError)
		}
	}
}

func TestResponse_GetResponseTimeMillis(t *testing.T) {
	resp := &Response{ResponseTime: 1500 * time.Millisecond}
	if resp.GetResponseTimeMillis() != 1500 {
		t.Errorf("Expected 1500ms, got %d", resp.GetResponseTimeMillis())
	}
}
