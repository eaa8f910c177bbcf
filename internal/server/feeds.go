package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/devfolio/internal/blog"
	"github.com/Zachkp/devfolio/internal/seo"
)

func (s *Server) publishedPosts() []*blog.Post {
	return s.deps.Posts.List(blog.ListOptions{})
}

func (s *Server) sitemap(c *gin.Context) {
	body, err := seo.Sitemap(s.site, seo.StaticPages, s.publishedPosts(), s.deps.Projects.All())
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (s *Server) robots(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", seo.Robots(s.site))
}

func (s *Server) manifest(c *gin.Context) {
	body, err := seo.Manifest(s.site)
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/manifest+json", body)
}

func (s *Server) feed(c *gin.Context) {
	body, err := seo.Feed(s.site, s.publishedPosts())
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", body)
}
