package httpx

import (
	"log"
	"net/http"
)

// HandlerFunc is an HTTP handler that reports failures instead of writing
// them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorRenderer writes the user-visible error page.
type ErrorRenderer interface {
	RenderError(w http.ResponseWriter, r *http.Request, status int, message string)
}

// Handle adapts fn to http.Handler. Every error fn returns is forwarded to
// render.
func Handle(render ErrorRenderer, fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		status, msg := StatusOf(err)
		if status >= http.StatusInternalServerError {
			log.Printf("request failed: request_id=%s method=%s path=%s status=%d error=%v",
				RequestIDFrom(r), r.Method, r.URL.Path, status, err)
		}
		render.RenderError(w, r, status, msg)
	})
}

// NotFound renders the 404 page for paths that match no route.
func NotFound(render ErrorRenderer) http.Handler {
	return Handle(render, func(w http.ResponseWriter, r *http.Request) error {
		return NewError(http.StatusNotFound, "Page not found")
	})
}
