// Package middleware provides HTTP middleware for the querystate server.
//
// This package includes:
//   - OpenTelemetry request tracing
//   - Prometheus request metrics
//
// Both wrap any http.Handler and keep the underlying writer's optional
// interfaces (http.Hijacker, http.Flusher) so WebSocket upgrades pass
// through.
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("querystate")))
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
package middleware
