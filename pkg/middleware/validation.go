package middleware

import (
	"net/http"
	"strings"

	"hireboard-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// ContentTypeJSON rejects mutating requests whose body is not JSON and
// caps the body size before handlers decode it.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			if r.ContentLength > 0 {
				ct := r.Header.Get("Content-Type")
				if ct != "" && !strings.HasPrefix(ct, "application/json") {
					utils.WriteErrorResponseWithCode(w, http.StatusUnsupportedMediaType,
						"UNSUPPORTED_MEDIA_TYPE", "Content-Type must be application/json", "")
					return
				}
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}
