package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/devfolio/internal/analytics"
	"github.com/Zachkp/devfolio/internal/blog"
	"github.com/Zachkp/devfolio/internal/contact"
	"github.com/Zachkp/devfolio/internal/github"
	xlog "github.com/Zachkp/devfolio/internal/log"
	"github.com/Zachkp/devfolio/internal/mail"
	"github.com/Zachkp/devfolio/internal/projects"
	"github.com/Zachkp/devfolio/internal/server"
	"github.com/Zachkp/devfolio/internal/site"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the portfolio web server",
		Long: `serve loads the profile, projects and blog posts, opens the analytics
database and starts the HTTP server. In dev mode post changes are picked up
without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
}

func serve(ctx context.Context, opts *rootOptions) error {
	cfg := opts.cfg
	logger := xlog.WithComponent("main")
	if !cfg.Dev {
		gin.SetMode(gin.ReleaseMode)
	}

	profile, err := site.LoadProfile(opts.profilePath())
	if err != nil {
		return err
	}

	posts := blog.NewStore(opts.postsDir())
	if err := posts.Reload(); err != nil {
		return fmt.Errorf("load posts: %w", err)
	}

	list, err := projects.LoadFile(cfg.Projects.File)
	if err != nil {
		return err
	}
	gh := github.NewClient(github.Options{
		BaseURL:    cfg.GitHub.BaseURL,
		Token:      cfg.GitHub.Token,
		CacheTTL:   cfg.GitHub.CacheTTL,
		HTTPClient: &http.Client{Timeout: cfg.GitHub.Timeout},
	})
	defer gh.Close()
	catalog := projects.NewCatalog(list, gh)

	db, err := analytics.Open(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	mailer, err := mail.New(cfg.Mail)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Deps{
		Config:    cfg,
		Profile:   profile,
		Posts:     posts,
		Projects:  catalog,
		Contact:   contact.NewService(mailer, db, cfg.Mail.To, cfg.Mail.From),
		Analytics: db,
		GitHub:    gh,
	})
	if err != nil {
		return err
	}

	if cfg.Dev {
		if err := posts.Watch(ctx); err != nil {
			logger.Warn().Err(err).Msg("content hot-reload unavailable")
		} else {
			logger.Info().Str(xlog.FieldPath, posts.Dir()).Msg("watching posts for changes")
		}
	}
	go srv.RunRetention(ctx)

	if cfg.Admin.Password == "" {
		logger.Info().Msg("admin area disabled: ADMIN_PASSWORD is not set")
	}
	logger.Info().
		Int("posts", posts.Len()).
		Int("projects", catalog.Len()).
		Str("mail_provider", cfg.Mail.Provider).
		Bool("dev", cfg.Dev).
		Msg("starting devfolio")
	return srv.Run(ctx)
}
