package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/internal/pipeline"
)

var premiumCmd = &cobra.Command{
	Use:   "premium",
	Short: "김치 프리미엄 산출 (이론가 vs 실물가)",
	Long: `이론가(GOLD_KRW_DON)와 국내 실물 매입가를 날짜별로 조인해
프리미엄 금액과 비율을 산출합니다.

프리미엄 구간:
- < 0%       할인 (Discount)
- 0 ~ 3.5%   정상 (Normal)
- 3.5 ~ 5.5% 수요 과열 (High Demand)
- >= 5.5%    과열 (Overheating)

Example:
  go run ./cmd/aurum premium`,
	RunE: runPremium,
}

func init() {
	rootCmd.AddCommand(premiumCmd)
}

func runPremium(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := initDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	PrintStageHeader("Premium (Theoretical vs Physical)")

	analyzer := pipeline.NewPremiumAnalyzer(d.derived, d.domestic, d.premium, d.log)
	result, err := analyzer.Run(ctx)
	if err != nil {
		return fmt.Errorf("premium analysis failed: %w", err)
	}

	PrintSeparator()
	PrintBatchResult(result.Written, result.Skipped, result.Failed)

	latest, err := d.premium.GetLatest(ctx)
	if errors.Is(err, contracts.ErrNoData) {
		PrintInfo("No overlapping dates yet - ingest domestic quotes first")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load latest premium: %w", err)
	}

	status := analyzer.Status(latest)
	PrintSeparator()
	PrintKeyValue("Date", latest.Date.Format("2006-01-02"), 12)
	PrintKeyValue("Theoretical", fmt.Sprintf("%.0f KRW", latest.TheoreticalPrice), 12)
	PrintKeyValue("Physical", fmt.Sprintf("%.0f KRW", latest.PhysicalPrice), 12)
	PrintKeyValue("Premium", fmt.Sprintf("%.0f KRW (%.2f%%)", latest.PremiumAmount, latest.PremiumRate), 12)
	PrintKeyValue("Status", fmt.Sprintf("%s - %s", status.Status, status.Message), 12)

	PrintSuccess("Premium analysis completed")
	return nil
}
