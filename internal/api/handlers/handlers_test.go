package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampChapters(t *testing.T) {
	tests := []struct {
		in, max, want int
	}{
		{0, 15, 7},
		{-4, 15, 7},
		{1, 15, 3},
		{3, 15, 3},
		{5, 15, 5},
		{15, 15, 15},
		{40, 15, 15},
		{0, 5, 5}, // default still respects max
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampChapters(tt.in, tt.max), "ClampChapters(%d, %d)", tt.in, tt.max)
	}
}

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"Bearer abc123":   "abc123",
		"bearer abc123":   "abc123",
		"Bearer   abc123": "abc123",
		"Basic abc123":    "",
		"Bearer":          "",
		"":                "",
	}

	for header, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		assert.Equal(t, want, BearerToken(req), "header %q", header)
	}
}

func TestSendErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	SendErrorResponse(rec, "Title is required", http.StatusBadRequest, "bad request", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"error":"Title is required"}`, rec.Body.String())
}

func TestValidateJSONBody(t *testing.T) {
	var dest struct {
		Title string `json:"title"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Go","extra":true}`))
	require.NoError(t, ValidateJSONBody(req, &dest))
	assert.Equal(t, "Go", dest.Title)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
	err := ValidateJSONBody(req, &dest)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	assert.ErrorAs(t, ValidateJSONBody(req, &dest), &ve)
}
