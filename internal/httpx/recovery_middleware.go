package httpx

import (
	"log"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware turns a panic into the 500 error page, unless the
// response was already started.
func RecoveryMiddleware(render ErrorRenderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					log.Printf("panic recovered: request_id=%s error=%v stack=%s", RequestIDFrom(r), err, debug.Stack())

					if rw, ok := w.(*responseWriter); ok && rw.wroteHeader() {
						return
					}
					render.RenderError(w, r, http.StatusInternalServerError, serverErrorMessage)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
