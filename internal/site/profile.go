// Package site holds the personal profile behind the About, Skills and
// Experience pages.
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is the marketing content of the site.
type Profile struct {
	Name      string       `yaml:"name"`
	Headline  string       `yaml:"headline"`
	About     []string     `yaml:"about"`
	Location  string       `yaml:"location"`
	Skills    []SkillGroup `yaml:"skills"`
	Work      []Experience `yaml:"experience"`
	Education []Experience `yaml:"education"`
	Links     []SocialLink `yaml:"links"`
}

// SkillGroup is a titled list of skills, rendered in file order.
type SkillGroup struct {
	Category string   `yaml:"category"`
	Items    []string `yaml:"items"`
}

// Experience is a job or a degree.
type Experience struct {
	Title        string   `yaml:"title"`
	Organization string   `yaml:"organization"`
	StartDate    string   `yaml:"start"`
	EndDate      string   `yaml:"end"`
	LogoPath     string   `yaml:"logo"`
	BulletPoints []string `yaml:"bullets"`
}

// Current reports whether the entry is still ongoing.
func (e Experience) Current() bool {
	return e.EndDate == "" || strings.EqualFold(e.EndDate, "present")
}

type SocialLink struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// LoadProfile reads a YAML profile. A missing file yields DefaultProfile.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultProfile(), nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes a YAML profile and checks the fields every page needs.
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Profile{}, errors.New("profile: name is required")
	}
	for i, g := range p.Skills {
		if strings.TrimSpace(g.Category) == "" {
			return Profile{}, fmt.Errorf("profile: skill group %d has no category", i)
		}
	}
	for i, e := range p.Work {
		if e.Title == "" || e.Organization == "" {
			return Profile{}, fmt.Errorf("profile: experience entry %d needs title and organization", i)
		}
	}
	return p, nil
}

// SkillCount is the number of skills across all groups.
func (p Profile) SkillCount() int {
	n := 0
	for _, g := range p.Skills {
		n += len(g.Items)
	}
	return n
}
