package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/interview-assistant/internal/site"
	"github.com/ziadkadry99/interview-assistant/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the static front end",
	Long: `Serve the front-end pages over HTTP. "/" serves index.html, "/auth"
serves auth.html and any other path is served by name from the root
directory (server.root_dir, or the built-in pages when unset). Paths
matching server.hidden are answered with 404.`,
	RunE: runServe,
}

var (
	servePort int
	serveRoot string
	serveOpen bool
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from config)")
	serveCmd.Flags().StringVar(&serveRoot, "root", "", "directory to serve instead of the built-in pages")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the site in the default browser")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if serveRoot != "" {
		cfg.Server.RootDir = serveRoot
	}

	srv, err := site.New(site.Config{
		Port:     cfg.Server.Port,
		RootDir:  cfg.Server.RootDir,
		Hidden:   cfg.Server.Hidden,
		AllowAll: cfg.Server.AllowAllOrigins,
	}, web.Assets())
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if serveOpen {
		go site.OpenBrowser(srv.URL())
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
