package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

// requestTimeout bounds plain HTTP routes. The websocket route is long-lived and exempt.
const requestTimeout = 30 * time.Second

// HTTPDeps are the handlers mounted by NewRouter. Nil handlers are not mounted.
type HTTPDeps struct {
	Health         http.Handler
	VASPs          http.HandlerFunc
	Gateway        http.Handler
	AllowedOrigins []string
	Logger         logrus.FieldLogger
}

// NewRouter returns the BFF HTTP surface:
//
//	GET /health  readiness
//	GET /vasps   directory listing for the demo UI
//	GET /ws      websocket upgrade
func NewRouter(deps HTTPDeps) *chi.Mux {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"https://*", "http://*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	if deps.Gateway != nil {
		r.Get("/ws", deps.Gateway.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		if deps.Health != nil {
			r.Method(http.MethodGet, "/health", deps.Health)
		}
		if deps.VASPs != nil {
			r.Get("/vasps", deps.VASPs)
		}
	})
	return r
}

// requestLogger logs one line per request with the chi request id.
func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"request_id":  middleware.GetReqID(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"duration_ms": time.Since(start).Milliseconds(),
				"remote_addr": r.RemoteAddr,
			}).Info("http request")
		})
	}
}
