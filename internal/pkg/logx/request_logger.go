/*
Package logx provides a structured logging wrapper based on zerolog.

This file holds the HTTP request logging middleware. Every request gets a
per-request logger carrying the request id and an anonymized client IP; the
logger is injected into the request context so handlers and the chat hub can
pick it up with zerolog.Ctx.
*/
package logx

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Requests slower than this are logged at warn level even when they succeed.
const slowRequestThreshold = 2 * time.Second

// anonymizeIP strips the host-identifying part of a client address before it
// reaches the logs. IPv4 keeps its /24, IPv6 keeps its /64.
func anonymizeIP(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}

	ip := net.ParseIP(addr)
	switch {
	case ip == nil:
		return "unknown_ip"
	case ip.IsLoopback():
		return "127.0.0.1"
	}

	if v4 := ip.To4(); v4 != nil {
		return v4.Mask(net.CIDRMask(24, 32)).String()
	}
	return ip.Mask(net.CIDRMask(64, 128)).String()
}

// RequestLogger returns middleware that logs one line per completed request.
// 4xx responses log at warn, 5xx at error, everything else at info.
func RequestLogger() func(next http.Handler) http.Handler {
	baseLogger := Logger()

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			logger := baseLogger.With().
				Str("component", "http").
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("remote_ip", anonymizeIP(r.RemoteAddr)).
				Str("method", r.Method).
				Str("uri", r.RequestURI).
				Logger()

			r = r.WithContext(logger.WithContext(r.Context()))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			status := ww.Status()
			logEvent := logger.Info()
			switch {
			case status >= 500:
				logEvent = logger.Error()
			case status >= 400, elapsed > slowRequestThreshold:
				logEvent = logger.Warn()
			}

			// The route pattern is only resolved after the handler ran.
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					logEvent = logEvent.Str("route", pattern)
				}
			}

			logEvent.
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("latency", elapsed).
				Msg("request completed")
		}

		return http.HandlerFunc(fn)
	}
}
