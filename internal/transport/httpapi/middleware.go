package httpapi

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// ProfileHeader выбирает независимые корзину и сессию.
const ProfileHeader = "X-Profile-ID"

var profilePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

type profileKey struct{}

func profileMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile := r.Header.Get(ProfileHeader)
		if profile == "" {
			profile = domain.DefaultProfile
		}
		if !profilePattern.MatchString(profile) {
			respondError(w, http.StatusBadRequest, "invalid "+ProfileHeader+" header")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), profileKey{}, profile)))
	})
}

func profileFrom(ctx context.Context) string {
	if profile, ok := ctx.Value(profileKey{}).(string); ok {
		return profile
	}
	return domain.DefaultProfile
}

// requestLogger пишет одну запись logrus на запрос.
func requestLogger(logger *log.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			entry := logger.WithFields(log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  middleware.GetReqID(r.Context()),
			})
			if ww.Status() >= http.StatusInternalServerError {
				entry.Warn("request failed")
				return
			}
			entry.Debug("request served")
		})
	}
}
