package middleware

import (
	"net/http"

	"github.com/abelbrown/nibble/internal/api"
)

// MaxBodyBytes caps what a client may send. A declared Content-Length over
// the cap is answered with 413 before the handler runs; bodies of unknown
// length are cut off while the handler reads them, and the handler turns
// the resulting *http.MaxBytesError into the same 413.
func MaxBodyBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				api.BodyTooLarge(w, limit)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
