package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/internal/forecast"
)

var forecastDays int

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "이론가 예측 (추세 + 요일 계절성)",
	Long: `이론가(GOLD_KRW_DON) 이력에 선형 추세와 요일 계절성을 적합해
지정한 기간만큼 앞으로 투영합니다. 최소 30개 관측치가 필요합니다.

Example:
  go run ./cmd/aurum forecast
  go run ./cmd/aurum forecast --days 60`,
	RunE: runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)

	forecastCmd.Flags().IntVar(&forecastDays, "days", forecast.DefaultHorizon, "예측 기간 (일)")
}

func runForecast(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if forecastDays <= 0 || forecastDays > 365 {
		return fmt.Errorf("days must be between 1 and 365, got %d", forecastDays)
	}

	d, err := initDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	PrintStageHeader("Forecast (Theoretical Price)")

	series, err := d.derived.GetSeries(ctx, contracts.MetricGoldKRWDon)
	if err != nil {
		return fmt.Errorf("load derived series: %w", err)
	}

	predictor := forecast.NewPredictor(series, d.log)
	result, err := predictor.Forecast(forecastDays)
	if contracts.IsInsufficientData(err) {
		PrintInfo(fmt.Sprintf("Forecast unavailable: %v", err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("forecast failed: %w", err)
	}

	metrics, err := forecast.Metrics(result)
	if err != nil {
		return fmt.Errorf("forecast metrics failed: %w", err)
	}

	PrintKeyValue("Horizon", fmt.Sprintf("%d days", result.Horizon), 10)
	PrintKeyValue("Current", fmt.Sprintf("%.0f KRW", metrics.CurrentEstimated), 10)
	PrintKeyValue("Projected", fmt.Sprintf("%.0f KRW", metrics.FutureEstimated), 10)
	PrintKeyValue("Change", fmt.Sprintf("%.2f%%", metrics.ChangePct), 10)
	PrintKeyValue("Trend", metrics.Trend, 10)

	last := result.Points[len(result.Points)-1]
	PrintKeyValue("Band", fmt.Sprintf("%.0f ~ %.0f KRW", last.LowerBound, last.UpperBound), 10)

	PrintSuccess("Forecast completed")
	return nil
}
