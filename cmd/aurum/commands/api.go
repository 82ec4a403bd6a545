package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/aurum/internal/analysis"
	"github.com/wonny/aurum/internal/api"
	"github.com/wonny/aurum/internal/api/handlers"
	"github.com/wonny/aurum/internal/pipeline"
	"github.com/wonny/aurum/pkg/redis"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "대시보드 API 서버 시작",
	Long: `대시보드 API 서버를 시작합니다.

Endpoints:
  GET /health
  GET /api/metrics/{metric}/history
  GET /api/premium/latest
  GET /api/premium/history
  GET /api/regime
  GET /api/regime/history
  GET /api/alert
  GET /api/analytics?window=30
  GET /api/forecast?days=30
  GET /api/stream (websocket)

Example:
  go run ./cmd/aurum api`,
	RunE: runAPI,
}

func init() {
	rootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := initDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	market := handlers.NewMarketHandler(
		d.raw, d.derived, d.premium,
		pipeline.NewPremiumAnalyzer(d.derived, d.domestic, d.premium, d.log),
		analysis.NewRegimeClassifier(d.log),
		analysis.NewValuationAlertSystem(d.log),
		redis.NewCache(d.redis, "aurum"),
		d.log,
	)
	stream := handlers.NewStreamHandler(market, d.log)

	server := api.New(d.cfg, d.log, api.NewRouter(market, stream, d.log))

	// Graceful shutdown on SIGINT/SIGTERM
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
