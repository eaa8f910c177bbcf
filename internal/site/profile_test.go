package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile_MissingFileUsesDefault(t *testing.T) {
	p, err := LoadProfile(filepath.Join(t.TempDir(), "profile.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile().Name, p.Name)
	assert.NotEmpty(t, p.Skills)
}

func TestLoadProfile_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Ada
headline: Engineer
about:
  - First paragraph.
skills:
  - category: Languages
    items: [Go, C]
  - category: Infra
    items: [Kubernetes]
experience:
  - title: Engineer
    organization: Analytical Engines
    start: "1843"
    end: Present
    bullets: [Wrote the first program]
`), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, 3, p.SkillCount())
	require.Len(t, p.Skills, 2)
	assert.Equal(t, "Languages", p.Skills[0].Category)
	require.Len(t, p.Work, 1)
	assert.True(t, p.Work[0].Current())
}

func TestParseProfile_Rejects(t *testing.T) {
	_, err := ParseProfile([]byte("headline: nobody"))
	assert.Error(t, err)

	_, err = ParseProfile([]byte("name: A\nskills:\n  - items: [Go]\n"))
	assert.Error(t, err)

	_, err = ParseProfile([]byte("name: A\nexperience:\n  - title: X\n"))
	assert.Error(t, err)
}

func TestExperience_Current(t *testing.T) {
	assert.True(t, Experience{EndDate: ""}.Current())
	assert.True(t, Experience{EndDate: "present"}.Current())
	assert.False(t, Experience{EndDate: "May 2023"}.Current())
}
