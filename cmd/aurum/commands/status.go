package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/aurum/internal/contracts"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "저장소 상태 요약 (테이블별 행 수)",
	Long: `연결된 백엔드와 테이블별 행 수, 최신 프리미엄을 요약합니다.

Example:
  go run ./cmd/aurum status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := initDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	PrintStageHeader("Store Status")
	PrintKeyValue("Backend", string(d.gw.Backend()), 22)
	PrintKeyValue("Fallback", fmt.Sprintf("%v", d.gw.InFallback()), 22)
	PrintSeparator()

	counts := []struct {
		table string
		count func() (int64, error)
	}{
		{"macro_raw", func() (int64, error) { return d.raw.Count(ctx) }},
		{"domestic_market_raw", func() (int64, error) { return d.domestic.Count(ctx) }},
		{"macro_derived", func() (int64, error) { return d.derived.Count(ctx) }},
		{"market_premium_derived", func() (int64, error) { return d.premium.Count(ctx) }},
	}
	for _, c := range counts {
		n, err := c.count()
		if err != nil {
			return fmt.Errorf("count %s: %w", c.table, err)
		}
		PrintKeyValue(c.table, fmt.Sprintf("%d rows", n), 22)
	}

	latest, err := d.premium.GetLatest(ctx)
	switch {
	case errors.Is(err, contracts.ErrNoData):
		PrintSeparator()
		PrintInfo("No premium records yet")
	case err != nil:
		return fmt.Errorf("load latest premium: %w", err)
	default:
		PrintSeparator()
		PrintKeyValue("Latest premium", fmt.Sprintf("%s  %.2f%%",
			latest.Date.Format("2006-01-02"), latest.PremiumRate), 22)
	}

	return nil
}
