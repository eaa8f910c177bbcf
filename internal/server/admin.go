package server

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/devfolio/internal/analytics"
	"github.com/Zachkp/devfolio/internal/config"
	xlog "github.com/Zachkp/devfolio/internal/log"
)

const (
	adminCookie      = "admin_token"
	adminCookieTTL   = 24 * time.Hour
	adminListLimit   = 100
	adminVisitsLimit = 200
)

// adminAuth holds the credentials and the per-process session token.
// Restarting the server logs every admin session out.
type adminAuth struct {
	username string
	password string
	token    string
	secure   bool
}

func newAdminAuth(cfg config.AdminConfig, siteURL string) *adminAuth {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("admin: generate token: " + err.Error())
	}
	return &adminAuth{
		username: cfg.Username,
		password: cfg.Password,
		token:    hex.EncodeToString(buf),
		secure:   strings.HasPrefix(siteURL, "https://"),
	}
}

func (a *adminAuth) checkCredentials(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

func (a *adminAuth) required() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// adminRoutes registers the admin area. Without a configured password
// or a database the routes are not registered and /admin answers 404.
func (s *Server) adminRoutes() {
	if s.admin == nil {
		return
	}
	r := s.engine
	r.GET("/admin", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin/dashboard") })
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{})
	})
	r.POST("/admin/login", s.adminLogin)
	r.GET("/admin/logout", s.adminLogout)

	g := r.Group("/admin", s.admin.required())
	g.GET("/dashboard", s.adminDashboard)
	g.GET("/api/stats", s.adminStatsJSON)
	g.GET("/export/stats", s.adminExport)
	g.GET("/messages", s.adminMessages)
	g.DELETE("/messages/:id", s.adminDeleteMessage)
	g.GET("/visitors", s.adminVisitors)
	g.POST("/privacy/cleanup", s.adminCleanup)
	g.POST("/github/refresh", s.adminRefreshGitHub)
}

func (s *Server) adminLogin(c *gin.Context) {
	if !s.admin.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
		s.logger.Warn().Str(xlog.FieldClientIP, s.clientHash(c)).Msg("failed admin login")
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(adminCookie, s.admin.token, int(adminCookieTTL.Seconds()), "/admin", "", s.admin.secure, true)
	s.logger.Info().Str(xlog.FieldClientIP, s.clientHash(c)).Msg("admin login")
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (s *Server) adminLogout(c *gin.Context) {
	c.SetCookie(adminCookie, "", -1, "/admin", "", s.admin.secure, true)
	c.Redirect(http.StatusFound, "/admin/login")
}

func (s *Server) adminDashboard(c *gin.Context) {
	stats, err := s.deps.Analytics.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		s.errorPage(c, http.StatusInternalServerError, "Could not load statistics.")
		return
	}
	c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
		"stats":    stats,
		"posts":    s.deps.Posts.Len(),
		"projects": s.deps.Projects.Len(),
	})
}

func (s *Server) adminStatsJSON(c *gin.Context) {
	stats, err := s.deps.Analytics.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) adminExport(c *gin.Context) {
	stats, err := s.deps.Analytics.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load statistics"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=devfolio-stats.json")
	s.logger.Info().Str(xlog.FieldClientIP, s.clientHash(c)).Msg("admin stats exported")
	c.JSON(http.StatusOK, stats)
}

func (s *Server) adminMessages(c *gin.Context) {
	msgs, err := s.deps.Analytics.Messages(c.Request.Context(), adminListLimit)
	if err != nil {
		_ = c.Error(err)
		s.errorPage(c, http.StatusInternalServerError, "Could not load messages.")
		return
	}
	c.HTML(http.StatusOK, "admin-messages.html", gin.H{"messages": msgs})
}

func (s *Server) adminDeleteMessage(c *gin.Context) {
	err := s.deps.Analytics.DeleteMessage(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, analytics.ErrMessageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Message not found"})
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete message"})
	default:
		// htmx swaps the row out with this empty body.
		c.String(http.StatusOK, "")
	}
}

func (s *Server) adminVisitors(c *gin.Context) {
	visits, err := s.deps.Analytics.RecentVisits(c.Request.Context(), adminVisitsLimit)
	if err != nil {
		_ = c.Error(err)
		s.errorPage(c, http.StatusInternalServerError, "Could not load visitors.")
		return
	}
	c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visits})
}

func (s *Server) adminCleanup(c *gin.Context) {
	n, err := s.deps.Analytics.Cleanup(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "deleted": n})
}

func (s *Server) adminRefreshGitHub(c *gin.Context) {
	if s.deps.GitHub == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "GitHub integration not configured"})
		return
	}
	s.deps.GitHub.Refresh()
	s.logger.Info().Str(xlog.FieldClientIP, s.clientHash(c)).Msg("github cache refreshed")
	c.JSON(http.StatusOK, gin.H{"message": "GitHub metadata will be refetched"})
}

// RunRetention deletes visitor rows past the retention window once a day
// until ctx is cancelled.
func (s *Server) RunRetention(ctx context.Context) {
	store := s.deps.Analytics
	if store == nil {
		return
	}
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		n, err := store.Cleanup(ctx)
		if err != nil && ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("visitor retention cleanup failed")
		} else if n > 0 {
			s.logger.Info().Int64("deleted", n).Msg("removed expired visitor rows")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
