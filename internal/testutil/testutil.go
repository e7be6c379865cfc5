package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// NewFormRequest creates a form-encoded request for testing.
func NewFormRequest(method, path string, form url.Values) *http.Request {
	r := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// PostForm creates a form-encoded POST request for testing.
func PostForm(path string, form url.Values) *http.Request {
	return NewFormRequest(http.MethodPost, path, form)
}

// Serve runs r through h and returns the recorded response.
func Serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// Get runs a GET request for path through h.
func Get(h http.Handler, path string) *httptest.ResponseRecorder {
	return Serve(h, httptest.NewRequest(http.MethodGet, path, nil))
}
