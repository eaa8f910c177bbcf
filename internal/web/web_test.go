package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{
		"home.html", "about.html", "skills.html", "experience.html", "contact.html",
		"projects.html", "project.html", "blog.html", "post.html", "privacy.html", "error.html",
		"work-content.html", "education-content.html",
		"admin-login.html", "admin-dashboard.html", "admin-messages.html", "admin-visitors.html",
		"header", "footer",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestStatic(t *testing.T) {
	_, err := fs.Stat(Static(), "css/site.css")
	assert.NoError(t, err)
	_, err = fs.Stat(Static(), "js/effects.js")
	assert.NoError(t, err)
}
