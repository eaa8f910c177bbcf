package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/Zachkp/devfolio/internal/blog"
	"github.com/Zachkp/devfolio/internal/projects"
	"github.com/Zachkp/devfolio/internal/seo"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write sitemap, robots, manifest and feed files",
		Long: `generate renders the files a static host or CDN would otherwise fetch
from the running server: sitemap.xml, robots.txt, manifest.webmanifest and
feed.xml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return generate(cmd.OutOrStdout(), opts, outDir)
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "public", "output directory")
	return cmd
}

func generate(out io.Writer, opts *rootOptions, dir string) error {
	posts, err := blog.LoadDir(blog.NewCompiler(), opts.postsDir())
	if err != nil {
		return err
	}
	blog.SortPosts(posts)
	published := posts[:0]
	for _, p := range posts {
		if !p.Draft {
			published = append(published, p)
		}
	}

	list, err := projects.LoadFile(opts.cfg.Projects.File)
	if err != nil {
		return err
	}
	projects.Sort(list)

	st := seo.SiteFromConfig(opts.cfg.Site)
	sitemap, err := seo.Sitemap(st, seo.StaticPages, published, list)
	if err != nil {
		return err
	}
	manifest, err := seo.Manifest(st)
	if err != nil {
		return err
	}
	feed, err := seo.Feed(st, published)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	files := []struct {
		name string
		body []byte
	}{
		{"sitemap.xml", sitemap},
		{"robots.txt", seo.Robots(st)},
		{"manifest.webmanifest", manifest},
		{"feed.xml", feed},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := renameio.WriteFile(path, f.body, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(out, "wrote %s\n", path)
	}
	return nil
}
