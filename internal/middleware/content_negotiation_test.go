package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func negotiationTestSetup() (http.Handler, *negotiationTestHandler) {
	next := &negotiationTestHandler{}
	return ContentNegotiation()(next), next
}

func getMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Message
}

func TestContentNegotiation_acceptHeader(t *testing.T) {
	for name, tc := range map[string]struct {
		accept  string
		allowed bool
	}{
		"json":                    {accept: "application/json", allowed: true},
		"json with params":        {accept: "application/json; charset=utf-8", allowed: true},
		"wildcard":                {accept: "*/*", allowed: true},
		"application wildcard":    {accept: "application/*", allowed: true},
		"absent":                  {accept: "", allowed: true},
		"browser style list":      {accept: "text/html,application/xhtml+xml,application/json;q=0.9", allowed: true},
		"xml":                     {accept: "application/xml", allowed: false},
		"html only":               {accept: "text/html", allowed: false},
		"unrelated wildcard only": {accept: "text/*", allowed: false},
	} {
		t.Run(name, func(t *testing.T) {
			handler, next := negotiationTestSetup()

			req := httptest.NewRequest("GET", "/posts", nil)
			if tc.accept != "" {
				req.Header.Set("Accept", tc.accept)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if tc.allowed {
				assert.True(t, next.called)
				assert.Equal(t, http.StatusOK, rr.Code)
			} else {
				assert.False(t, next.called)
				assert.Equal(t, http.StatusNotAcceptable, rr.Code)
				assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
				assert.Equal(t, "Request must accept application/json data", getMessage(t, rr))
			}
		})
	}
}

func TestContentNegotiation_contentTypeHeader(t *testing.T) {
	for name, tc := range map[string]struct {
		method      string
		contentType string
		allowed     bool
	}{
		"post json":             {method: "POST", contentType: "application/json", allowed: true},
		"post json with params": {method: "POST", contentType: "application/json; charset=utf-8", allowed: true},
		"post xml":              {method: "POST", contentType: "application/xml", allowed: false},
		"post form":             {method: "POST", contentType: "application/x-www-form-urlencoded", allowed: false},
		"post no content type":  {method: "POST", contentType: "", allowed: false},
		"get ignores it":        {method: "GET", contentType: "application/xml", allowed: true},
		"delete ignores it":     {method: "DELETE", contentType: "", allowed: true},
	} {
		t.Run(name, func(t *testing.T) {
			handler, next := negotiationTestSetup()

			req := httptest.NewRequest(tc.method, "/posts", strings.NewReader("{}"))
			req.Header.Set("Accept", "application/json")
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if tc.allowed {
				assert.True(t, next.called)
			} else {
				assert.False(t, next.called)
				assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
				assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
				assert.Equal(t, "Request must contain application/json data", getMessage(t, rr))
			}
		})
	}
}

// accept errors must win over content type errors
func TestContentNegotiation_acceptCheckedFirst(t *testing.T) {
	handler, next := negotiationTestSetup()

	req := httptest.NewRequest("POST", "/posts", strings.NewReader("{}"))
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("Content-Type", "application/xml")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusNotAcceptable, rr.Code)
	assert.Equal(t, "Request must accept application/json data", getMessage(t, rr))
}

type negotiationTestHandler struct {
	called bool
}

func (h *negotiationTestHandler) ServeHTTP(http.ResponseWriter, *http.Request) {
	h.called = true
}
