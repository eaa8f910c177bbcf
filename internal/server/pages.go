package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/devfolio/internal/blog"
	"github.com/Zachkp/devfolio/internal/projects"
	"github.com/Zachkp/devfolio/internal/seo"
)

const (
	homeProjects = 3
	homePosts    = 3
	relatedPosts = 3
)

// render executes a page template with the layout data every page shares.
func (s *Server) render(c *gin.Context, status int, name, nav string, meta seo.Meta, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Meta"] = meta
	data["Site"] = s.cfg.Site
	data["Nav"] = nav
	c.HTML(status, name, data)
}

func (s *Server) errorPage(c *gin.Context, status int, msg string) {
	meta := s.site.PageMeta(http.StatusText(status), msg, c.Request.URL.Path)
	s.render(c, status, "error.html", "", meta, gin.H{"Status": status, "Error": msg})
}

func (s *Server) notFound(c *gin.Context) {
	if isAPIPath(c.Request.URL.Path) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	s.errorPage(c, http.StatusNotFound, "The page you were looking for does not exist.")
}

func (s *Server) home(c *gin.Context) {
	var featured []projects.Project
	for _, p := range s.deps.Projects.All() {
		if p.Featured {
			featured = append(featured, p)
		}
		if len(featured) == homeProjects {
			break
		}
	}
	posts := s.deps.Posts.List(blog.ListOptions{IncludeDrafts: s.cfg.Dev})
	if len(posts) > homePosts {
		posts = posts[:homePosts]
	}
	p := s.deps.Profile
	s.render(c, http.StatusOK, "home.html", "home",
		s.site.PageMeta("", p.Headline, "/"),
		gin.H{"Profile": p, "Projects": featured, "Posts": posts})
}

func (s *Server) about(c *gin.Context) {
	s.render(c, http.StatusOK, "about.html", "about",
		s.site.PageMeta("About", "About "+s.deps.Profile.Name, "/about"),
		gin.H{"Profile": s.deps.Profile})
}

func (s *Server) skills(c *gin.Context) {
	s.render(c, http.StatusOK, "skills.html", "skills",
		s.site.PageMeta("Skills", "Languages, frameworks and tools", "/skills"),
		gin.H{"Profile": s.deps.Profile})
}

func (s *Server) experience(c *gin.Context) {
	s.render(c, http.StatusOK, "experience.html", "experience",
		s.site.PageMeta("Experience", "Work history and education", "/experience"),
		gin.H{"Profile": s.deps.Profile})
}

func (s *Server) workFragment(c *gin.Context) {
	c.HTML(http.StatusOK, "work-content.html", gin.H{"Profile": s.deps.Profile})
}

func (s *Server) educationFragment(c *gin.Context) {
	c.HTML(http.StatusOK, "education-content.html", gin.H{"Profile": s.deps.Profile})
}

func (s *Server) contactPage(c *gin.Context) {
	s.render(c, http.StatusOK, "contact.html", "contact",
		s.site.PageMeta("Contact", "Send me a message", "/contact"), nil)
}

func (s *Server) privacy(c *gin.Context) {
	s.render(c, http.StatusOK, "privacy.html", "",
		s.site.PageMeta("Privacy", "How this site handles visitor data", "/privacy"), nil)
}

func (s *Server) projectList(c *gin.Context) {
	tech := c.Query("tech")
	title := "Projects"
	if tech != "" {
		title = fmt.Sprintf("Projects using %s", tech)
	}
	s.render(c, http.StatusOK, "projects.html", "projects",
		s.site.PageMeta(title, "Things I have built", "/projects"),
		gin.H{
			"Tech":         tech,
			"Technologies": projects.Technologies(s.deps.Projects.All()),
			"Projects":     s.deps.Projects.List(c.Request.Context(), tech),
		})
}

func (s *Server) projectDetail(c *gin.Context) {
	p, err := s.deps.Projects.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, projects.ErrNotFound) {
		s.notFound(c)
		return
	}
	if err != nil {
		_ = c.Error(err)
		s.errorPage(c, http.StatusInternalServerError, "Something went wrong.")
		return
	}
	meta := s.site.ArticleMeta(p.Name, p.Description, "/projects/"+p.ID, p.Image)
	meta.OGType = "website"
	s.render(c, http.StatusOK, "project.html", "projects", meta, gin.H{"Project": p})
}

func (s *Server) blogIndex(c *gin.Context) {
	s.renderBlog(c, "")
}

func (s *Server) blogTag(c *gin.Context) {
	s.renderBlog(c, c.Param("tag"))
}

func (s *Server) renderBlog(c *gin.Context, tag string) {
	posts := s.deps.Posts.List(blog.ListOptions{Tag: tag, IncludeDrafts: s.cfg.Dev})
	if tag != "" && len(posts) == 0 {
		s.notFound(c)
		return
	}
	title, path := "Blog", "/blog"
	if tag != "" {
		title, path = "Posts tagged "+tag, "/blog/tags/"+tag
	}
	s.render(c, http.StatusOK, "blog.html", "blog",
		s.site.PageMeta(title, "Notes on software and the things I build", path),
		gin.H{"Tag": tag, "Tags": s.deps.Posts.Tags(), "Posts": posts})
}

func (s *Server) blogPost(c *gin.Context) {
	post, err := s.deps.Posts.Get(c.Param("slug"), s.cfg.Dev)
	if err != nil {
		s.notFound(c)
		return
	}
	prev, next := s.deps.Posts.Adjacent(post.Slug)
	s.render(c, http.StatusOK, "post.html", "blog",
		s.site.ArticleMeta(post.Title, post.Description, "/blog/"+post.Slug, post.Image),
		gin.H{
			"Post":    post,
			"Prev":    prev,
			"Next":    next,
			"Related": s.deps.Posts.Related(post, relatedPosts),
		})
}
