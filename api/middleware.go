package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voltedge/workshop-api/internal/models"
	"github.com/voltedge/workshop-api/internal/utils"
)

type contextKey string

const userContextKey contextKey = "user"

// Logger tags every request with a short request id and logs method, path
// and duration.
func (app *application) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()[:8]
		start := time.Now()

		next.ServeHTTP(w, r)

		app.infoLog.Printf("[%s] %s %s (%s)", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}

// Authenticate rejects requests without a valid bearer token and stores the
// signed-in user in the request context.
func (app *application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.Unauthorized(w, errors.New("missing bearer token"))
			return
		}

		user, err := utils.VerifyJWT(strings.TrimPrefix(header, "Bearer "), app.config.JWT)
		if err != nil {
			app.errorLog.Println("ERROR_01_Authenticate:", err)
			utils.Unauthorized(w, errors.New("invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFromContext returns the authenticated user, or nil on public routes.
func userFromContext(ctx context.Context) *models.JWT {
	user, _ := ctx.Value(userContextKey).(*models.JWT)
	return user
}
