package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/devfolio/internal/blog"
	"github.com/Zachkp/devfolio/internal/contact"
	"github.com/Zachkp/devfolio/internal/projects"
)

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

// submitContact accepts JSON or form encoded contact requests.
func (s *Server) submitContact(c *gin.Context) {
	var req contact.Request
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	err := s.deps.Contact.Submit(c.Request.Context(), req, contact.Meta{ClientIP: c.ClientIP()})
	var verrs contact.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": verrs})
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send message"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully"})
	}
}

func (s *Server) apiProjects(c *gin.Context) {
	list := s.deps.Projects.List(c.Request.Context(), c.Query("tech"))
	if list == nil {
		list = []projects.Project{}
	}
	c.JSON(http.StatusOK, gin.H{"projects": list})
}

func (s *Server) apiPosts(c *gin.Context) {
	posts := s.deps.Posts.List(blog.ListOptions{Tag: c.Query("tag"), IncludeDrafts: s.cfg.Dev})
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (s *Server) health(c *gin.Context) {
	body := gin.H{"status": "ok", "posts": s.deps.Posts.Len(), "projects": s.deps.Projects.Len()}
	if s.deps.GitHub != nil {
		body["github_cache"] = s.deps.GitHub.CacheStats()
	}
	if s.deps.Analytics != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.deps.Analytics.Ping(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, body)
}
