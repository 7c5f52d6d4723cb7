package server

import (
	"net/http"
	"time"

	"fjacquet/commission-calc/internal/logging"

	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.logger.Warn("Rate limit exceeded",
				logging.F(logging.FieldPath, r.URL.Path),
				logging.F(logging.FieldRemoteAddr, r.RemoteAddr))
			writeError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Debug("Request handled",
			logging.F(logging.FieldMethod, r.Method),
			logging.F(logging.FieldPath, r.URL.Path),
			logging.F(logging.FieldStatus, ww.Status()),
			logging.F(logging.FieldRequestID, middleware.GetReqID(r.Context())),
			logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	})
}
