package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/kalpyotish/kalp-admin/internal/api"
	"github.com/kalpyotish/kalp-admin/internal/config"
	"github.com/kalpyotish/kalp-admin/internal/logging"
	"github.com/kalpyotish/kalp-admin/internal/session"
)

// Env is the wiring shared by the TUI and every subcommand.
type Env struct {
	Config  *config.Config
	Client  *api.Client
	Session session.Accessor
	Logger  *slog.Logger

	closer io.Closer
}

// Load reads the config file, overlays the environment, opens the log file
// and restores any persisted session onto the client.
func (e *Env) Load(envFiles ...string) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(envFiles...); err != nil {
		return err
	}

	logger, closer, err := logging.OpenFile(cfg.LogPath(), logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}

	client := api.NewClient(cfg.APIURL())
	client.SetLogger(logger)

	sess := session.New(session.ConfigStore{})
	if err := sess.Init(); err != nil {
		_ = closer.Close()
		return err
	}
	if admin, ok := sess.Current(); ok {
		client.SetToken(admin.Token)
	}

	e.Config = cfg
	e.Client = client
	e.Session = sess
	e.Logger = logger
	e.closer = closer
	return nil
}

// Close releases the log file.
func (e *Env) Close() error {
	if e.closer == nil {
		return nil
	}
	err := e.closer.Close()
	e.closer = nil
	return err
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return logging.Discard()
	}
	return e.Logger
}
