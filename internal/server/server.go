// Package server wires the gin engine: pages, JSON API, generated SEO
// files, the admin area and the middleware around them.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Zachkp/devfolio/internal/analytics"
	"github.com/Zachkp/devfolio/internal/blog"
	"github.com/Zachkp/devfolio/internal/config"
	"github.com/Zachkp/devfolio/internal/contact"
	"github.com/Zachkp/devfolio/internal/github"
	xlog "github.com/Zachkp/devfolio/internal/log"
	"github.com/Zachkp/devfolio/internal/projects"
	"github.com/Zachkp/devfolio/internal/ratelimit"
	"github.com/Zachkp/devfolio/internal/seo"
	"github.com/Zachkp/devfolio/internal/site"
	"github.com/Zachkp/devfolio/internal/web"
)

// Deps are the services the HTTP layer renders from.
type Deps struct {
	Config   config.Config
	Profile  site.Profile
	Posts    *blog.Store
	Projects *projects.Catalog
	Contact  *contact.Service
	// Analytics is optional. Without it visits are not tracked and the
	// admin area is unavailable.
	Analytics *analytics.Store
	// GitHub is optional. When set, /healthz reports its cache and the
	// admin area can refresh it.
	GitHub *github.Client
	// ContactLimiter defaults to ratelimit.ContactConfig.
	ContactLimiter *ratelimit.Limiter
}

// Server is the devfolio HTTP server.
type Server struct {
	deps   Deps
	cfg    config.Config
	site   seo.Site
	engine *gin.Engine
	admin  *adminAuth
	logger zerolog.Logger
}

// New builds the engine and registers every route.
func New(d Deps) (*Server, error) {
	if d.Posts == nil || d.Projects == nil || d.Contact == nil {
		return nil, errors.New("server: posts, projects and contact services are required")
	}
	if d.ContactLimiter == nil {
		d.ContactLimiter = ratelimit.New(ratelimit.ContactConfig())
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		deps:   d,
		cfg:    d.Config,
		site:   seo.SiteFromConfig(d.Config.Site),
		engine: gin.New(),
		logger: xlog.WithComponent("http"),
	}
	if d.Analytics != nil && d.Config.Admin.Password != "" {
		s.admin = newAdminAuth(d.Config.Admin, s.site.URL)
	}

	s.engine.SetHTMLTemplate(tmpl)
	s.engine.Use(gin.Recovery(), s.requestLogger(), s.metrics(), s.visitorTracking())
	s.routes()
	return s, nil
}

// Handler exposes the engine, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	r := s.engine
	r.StaticFS("/static", http.FS(web.Static()))
	if s.cfg.Content.Images != "" {
		r.Static("/images", s.cfg.Content.Images)
	}

	r.GET("/", s.home)
	r.GET("/about", s.about)
	r.GET("/skills", s.skills)
	r.GET("/experience", s.experience)
	r.GET("/contact", s.contactPage)
	r.GET("/privacy", s.privacy)
	r.GET("/projects", s.projectList)
	r.GET("/projects/:id", s.projectDetail)
	r.GET("/blog", s.blogIndex)
	r.GET("/blog/tags/:tag", s.blogTag)
	r.GET("/blog/:slug", s.blogPost)

	// HTMX fragments for the experience tabs.
	r.GET("/partials/work", s.workFragment)
	r.GET("/partials/education", s.educationFragment)

	api := r.Group("/api")
	api.POST("/contact", s.contactRateLimit(), s.submitContact)
	api.GET("/projects", s.apiProjects)
	api.GET("/posts", s.apiPosts)

	r.GET("/sitemap.xml", s.sitemap)
	r.GET("/robots.txt", s.robots)
	r.GET("/manifest.webmanifest", s.manifest)
	r.GET("/feed.xml", s.feed)
	r.GET("/healthz", s.health)
	r.GET("/metrics", metricsHandler())

	s.adminRoutes()
	r.NoRoute(s.notFound)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Str("site", s.site.URL).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
