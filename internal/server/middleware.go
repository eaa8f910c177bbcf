package server

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zachkp/devfolio/internal/analytics"
	xlog "github.com/Zachkp/devfolio/internal/log"
	"github.com/Zachkp/devfolio/internal/metrics"
)

func (s *Server) clientHash(c *gin.Context) string {
	if s.deps.Analytics == nil {
		return ""
	}
	return s.deps.Analytics.HashIP(c.ClientIP())
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := s.logger.Info()
		switch {
		case status >= 500:
			ev = s.logger.Error()
		case status >= 400:
			ev = s.logger.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str(xlog.FieldMethod, c.Request.Method).
			Str(xlog.FieldPath, c.Request.URL.Path).
			Int(xlog.FieldStatus, status).
			Dur(xlog.FieldLatency, time.Since(start)).
			Str(xlog.FieldClientIP, s.clientHash(c)).
			Msg("request")
	}
}

func (s *Server) metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}

// visitorTracking records successful page views in the background,
// skipping assets, the admin area and clients sending Do Not Track.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		store := s.deps.Analytics
		if store == nil || c.Request.Method != "GET" || c.Writer.Status() >= 400 {
			return
		}
		path := c.Request.URL.Path
		if !analytics.ShouldTrack(path, c.GetHeader("DNT")) {
			return
		}
		ip, ua := c.ClientIP(), c.Request.UserAgent()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.RecordVisit(ctx, ip, ua, path); err != nil {
				s.logger.Warn().Err(err).Msg("error recording visitor")
			}
		}()
	}
}

// contactRateLimit applies the contact limiter and counts rejections as a
// contact outcome.
func (s *Server) contactRateLimit() gin.HandlerFunc {
	limit := s.deps.ContactLimiter.Middleware()
	return func(c *gin.Context) {
		limit(c)
		if c.IsAborted() {
			metrics.RecordContact("rate_limited")
		}
	}
}

func metricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
