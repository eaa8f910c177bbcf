package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Zachkp/devfolio/internal/blog"
	"github.com/Zachkp/devfolio/internal/projects"
	"github.com/Zachkp/devfolio/internal/site"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate content and project data",
		Long: `check compiles every blog post, parses the project catalog and the
profile, and reports what it found. It exits non-zero when anything fails to
load.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return check(cmd.OutOrStdout(), opts)
		},
	}
}

func check(out io.Writer, opts *rootOptions) error {
	var errs []error

	if !fileExists(opts.profilePath()) {
		fmt.Fprintf(out, "profile: %s not found, using built-in profile\n", opts.profilePath())
	}
	if profile, err := site.LoadProfile(opts.profilePath()); err != nil {
		errs = append(errs, err)
	} else {
		fmt.Fprintf(out, "profile: %s, %d skills, %d jobs\n", profile.Name, profile.SkillCount(), len(profile.Work))
	}

	if posts, err := blog.LoadDir(blog.NewCompiler(), opts.postsDir()); err != nil {
		errs = append(errs, err)
	} else {
		drafts := 0
		for _, p := range posts {
			if p.Draft {
				drafts++
			}
		}
		fmt.Fprintf(out, "posts: %d loaded (%d drafts) from %s\n", len(posts), drafts, opts.postsDir())
	}

	if list, err := projects.LoadFile(opts.cfg.Projects.File); err != nil {
		errs = append(errs, err)
	} else {
		fmt.Fprintf(out, "projects: %d loaded from %s\n", len(list), opts.cfg.Projects.File)
	}

	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		return errors.Join(errs...)
	}
	fmt.Fprintln(out, "ok")
	return nil
}
