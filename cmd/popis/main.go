// Command popis is a command-line client for the inventory REST API.
package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/erazemk/popis/internal/client"
	"github.com/erazemk/popis/internal/config"
	"github.com/erazemk/popis/internal/db"
	"github.com/erazemk/popis/internal/export"
	"github.com/erazemk/popis/internal/logging"
	"github.com/erazemk/popis/internal/session"
	"github.com/erazemk/popis/internal/store"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env holds the components a command works with.
type env struct {
	cfg     *config.Config
	db      *sql.DB
	client  *client.Client
	items   *client.ItemRepository
	reports *client.ReportQuery
	out     io.Writer

	closeLog func()
}

func (e *env) Close() {
	e.db.Close()
	e.closeLog()
}

// pipeline returns an export pipeline for format, or the configured format
// if format is empty.
func (e *env) pipeline(format, dir string) (*export.Pipeline, error) {
	if format == "" {
		format = e.cfg.ExportFormat
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		dir = e.cfg.ExportDir
	}
	return &export.Pipeline{
		Source: e.client,
		Dir:    dir,
		Format: f,
		Sharer: &export.CommandSharer{Command: export.ParseCommand(e.cfg.ShareCommand)},
	}, nil
}

// setup loads the configuration and opens the local state database.
func setup(c *cli.Context) (*env, error) {
	cfg, err := config.LoadAndValidate(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("api-url") {
		cfg.APIURL = c.String("api-url")
	}

	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	closeLog, err := logging.Setup(logging.Options{
		Path:   cfg.LogPath,
		Level:  level,
		Stdout: c.App.ErrWriter,
		Stderr: c.App.ErrWriter,
	})
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.StateDB)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("opening state database: %w", err)
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		closeLog()
		return nil, fmt.Errorf("preparing state database: %w", err)
	}

	sess := session.New(&store.TokenStore{DB: database})
	apiClient := client.New(cfg.APIURL, cfg.Timeout, sess)
	uploader := &client.ImageUploader{Client: apiClient, MaxDimension: cfg.ImageMaxDimension}

	return &env{
		cfg:      cfg,
		db:       database,
		client:   apiClient,
		items:    &client.ItemRepository{Client: apiClient, Images: uploader},
		reports:  &client.ReportQuery{Client: apiClient},
		out:      c.App.Writer,
		closeLog: closeLog,
	}, nil
}

// withEnv wraps an action that needs the environment.
func withEnv(action func(c *cli.Context, e *env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := setup(c)
		if err != nil {
			return err
		}
		defer e.Close()
		return action(c, e)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "popis",
		Usage:     "manage inventory items, reports and exports",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
				EnvVars: []string{"POPIS_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "API base URL (overrides config)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log requests and pipeline steps",
			},
		},
		Commands: []*cli.Command{
			loginCommand(),
			registerCommand(),
			forgotPasswordCommand(),
			logoutCommand(),
			itemsCommand(),
			reportCommand(),
			exportCommand(),
			optionsCommand(),
		},
	}
}
