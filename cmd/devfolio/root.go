package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Zachkp/devfolio/internal/config"
	xlog "github.com/Zachkp/devfolio/internal/log"
)

type rootOptions struct {
	configFile string
	envFile    string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "devfolio",
		Short: "Personal portfolio and technical blog server",
		Long: `devfolio serves a portfolio site: profile pages, a project catalog
enriched with GitHub metadata, a markdown blog and a contact form.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is ./devfolio.yaml)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	cmd.AddCommand(newServeCmd(opts), newCheckCmd(opts), newGenerateCmd(opts))
	return cmd
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Options{File: o.configFile, EnvFile: o.envFile})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	o.cfg = cfg

	logCfg := xlog.Config{Level: cfg.Log.Level, Service: "devfolio", Output: cmd.ErrOrStderr()}
	if cfg.Dev {
		logCfg.Output = zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}
	}
	xlog.Configure(logCfg)
	return nil
}

func (o *rootOptions) postsDir() string {
	return filepath.Join(o.cfg.Content.Dir, "posts")
}

func (o *rootOptions) profilePath() string {
	return filepath.Join(o.cfg.Content.Dir, "profile.yaml")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
