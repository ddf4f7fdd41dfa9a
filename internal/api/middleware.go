package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/example/newsroom/internal/ctxutil"
	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/logging"
	"github.com/example/newsroom/internal/ports/primary"
)

// HeaderRequestID carries the request correlation id.
const HeaderRequestID = "X-Request-ID"

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(logging.ContextWithRequestID(r.Context(), id)))
	})
}

func rateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	if window <= 0 {
		window = time.Minute
	}
	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			writeJSON(w, http.StatusTooManyRequests, errorBody{
				Error:   "rate_limit_exceeded",
				Message: "too many requests; try again later",
			})
		}),
	)
}

// authenticate resolves the bearer token to a user and stores it as the
// request actor.
func authenticate(auth primary.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeError(w, r, errs.Unauthenticated("missing bearer token"))
				return
			}

			user, err := auth.VerifyToken(r.Context(), strings.TrimSpace(token))
			if err != nil {
				writeError(w, r, err)
				return
			}

			ctx := ctxutil.WithActor(r.Context(), ctxutil.Actor{
				ID:    user.ID,
				Email: user.Email,
				Name:  user.Name,
				Role:  user.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
