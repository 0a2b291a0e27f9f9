package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/truthlens/internal/analyzer"
	"github.com/ppiankov/truthlens/internal/history"
	"github.com/ppiankov/truthlens/internal/model"
	"github.com/ppiankov/truthlens/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the credibility analysis HTTP server",
	Long: `Serve starts the HTTP API.

Endpoints:
  POST /check-news  analyze text or a URL, returns the credibility verdict
  GET  /health      liveness and configuration summary
  GET  /history     recent analyses (when history is enabled)`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :3001)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	log := newLogger(cfg)
	a := analyzer.New(cfg, log)

	store, err := newHistoryStore(cfg)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(a, store, cfg, log)
	return srv.Run(ctx)
}

// newHistoryStore opens the history store named in the configuration,
// or returns nil when history is disabled.
func newHistoryStore(cfg model.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	return history.NewStore(cfg.History.Path, cfg.History.MaxEntries)
}
