package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/interview-assistant/internal/api"
	"github.com/ziadkadry99/interview-assistant/internal/config"
	"github.com/ziadkadry99/interview-assistant/internal/db"
	"github.com/ziadkadry99/interview-assistant/internal/pages"
	"github.com/ziadkadry99/interview-assistant/internal/resume"
	"github.com/ziadkadry99/interview-assistant/internal/session"
	"github.com/ziadkadry99/interview-assistant/internal/ui"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `interview config init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// app is what a client command needs: config, session store, API client
// and the controller dependencies built from them.
type app struct {
	cfg      *config.Config
	db       *db.DB
	sessions *session.Store
	client   *api.Client
	printer  *ui.Printer
	nav      *ui.Navigator
	deps     pages.Deps
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.Session.Path)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	sessions := session.NewStore(database)

	printer := &ui.Printer{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	opts := []api.Option{api.WithUploadProgress(ui.UploadProgress(cmd.ErrOrStderr()))}
	if verbose {
		opts = append(opts, api.WithLogger(log.New(cmd.ErrOrStderr(), "api: ", log.LstdFlags)))
	}
	client := api.New(cfg.API.BaseURL, sessions, opts...)
	nav := &ui.Navigator{Printer: printer}

	return &app{
		cfg:      cfg,
		db:       database,
		sessions: sessions,
		client:   client,
		printer:  printer,
		nav:      nav,
		deps: pages.Deps{
			API:      client,
			Sessions: sessions,
			Nav:      nav,
			Logger:   log.New(cmd.ErrOrStderr(), "", 0),
		},
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// commandContext is cancelled on Ctrl+C or SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// show prints a successful page result, then follows any navigation the
// page asked for.
func (a *app) show(res *pages.Result) {
	defer a.follow()
	if res == nil {
		return
	}
	if res.Status != "" {
		a.printer.Success(res.Status)
	}
	for _, w := range res.Warnings {
		a.printer.Warning(w)
	}
	a.printer.View(res.View)
}

// fail prints a page error the way the page shows it, then follows any
// navigation the page asked for. Errors that are not page errors are
// returned unchanged for the root command to print.
func (a *app) fail(err error) error {
	defer a.follow()
	var ve *pages.ValidationError
	var f *pages.Failure
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pages.ErrCancelled):
		a.printer.Info(err.Error())
		return nil
	case errors.As(err, &ve), errors.As(err, &f), errors.Is(err, pages.ErrLoginRequired):
		a.printer.Error(err.Error())
		return errReported
	}
	return err
}

// follow prints the pending navigation hint after its delay.
func (a *app) follow() {
	if a.nav != nil {
		a.nav.Flush()
	}
}

// result shows res or err and returns the command's error.
func (a *app) result(res *pages.Result, err error) error {
	if err != nil {
		return a.fail(err)
	}
	a.show(res)
	return nil
}

// loadResume reads a résumé file for upload.
func loadResume(path string) (*api.File, error) {
	f, err := resume.Load(path)
	if err != nil {
		if errors.Is(err, resume.ErrUnreadable) {
			return nil, fmt.Errorf("无法读取文件: %w", err)
		}
		return nil, err
	}
	return &f, nil
}

// parseID parses a knowledge-base id argument.
func (a *app) parseID(s string) (int64, error) {
	id, err := pages.ParseID(s)
	if err != nil {
		return 0, a.fail(err)
	}
	return id, nil
}
