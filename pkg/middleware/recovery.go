package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"hireboard-backend/pkg/logs"
	"hireboard-backend/pkg/utils"
)

// Recovery converts panics into 500 responses so one bad request cannot
// take the process down.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logs.Logger.WithFields(logrus.Fields{
					"panic": rec,
					"path":  r.URL.Path,
					"stack": string(debug.Stack()),
				}).Error("panic recovered")
				utils.WriteInternalServerErrorResponse(w, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
