package commands

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/wonny/aurum/internal/analysis"
	"github.com/wonny/aurum/internal/contracts"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "시장 국면 분류 + 밸류에이션 경보",
	Long: `저장된 데이터로 시장 국면과 밸류에이션 상태를 분석합니다.

- 국면 분류: 금/달러인덱스/S&P 500의 50일 이동평균 대비 추세 조합
- 밸류에이션: 이론가의 3년 롤링 z-score 기반 경보
- 차트 통계: CPI 실질가격, 금/달러 롤링 상관계수, 연환산 변동성

Example:
  go run ./cmd/aurum analyze`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := initDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	PrintStageHeader("Market Analysis")

	// 1. Regime classification
	obs, err := d.raw.GetBySymbols(ctx,
		contracts.SymbolGoldUSD, contracts.SymbolDXY, contracts.SymbolSPX)
	if err != nil {
		return fmt.Errorf("load regime inputs: %w", err)
	}

	ms := contracts.PivotObservations(obs,
		contracts.SymbolGoldUSD, contracts.SymbolDXY, contracts.SymbolSPX)
	regime := analysis.NewRegimeClassifier(d.log).Classify(ms)

	PrintKeyValue("Regime", string(regime), 8)
	PrintKeyValue("Rows", fmt.Sprintf("%d joined dates", ms.Len()), 8)

	// 2. Valuation alert
	PrintSeparator()
	series, err := d.derived.GetSeries(ctx, contracts.MetricGoldKRWDon)
	if err != nil {
		return fmt.Errorf("load derived series: %w", err)
	}

	status, err := analysis.NewValuationAlertSystem(d.log).CheckValuation(series)
	if contracts.IsInsufficientData(err) {
		PrintInfo(fmt.Sprintf("Valuation alert unavailable: %v", err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("valuation check failed: %w", err)
	}

	PrintKeyValue("Z-Score", fmt.Sprintf("%.2f", status.ZScore), 8)
	PrintKeyValue("Level", string(status.Level), 8)
	PrintKeyValue("Signal", status.Message, 8)

	// 3. Chart statistics (30일 롤링)
	PrintSeparator()
	if err := printChartStats(ctx, d, series); err != nil {
		return err
	}

	PrintSuccess("Analysis completed")
	return nil
}

// chartStatsWindow is the rolling window for correlation and volatility
const chartStatsWindow = 30

// printChartStats reports the latest CPI-deflated real price, gold/dollar
// rolling correlation and annualized volatility. Missing inputs are
// reported, not fatal.
func printChartStats(ctx context.Context, d *deps, goldKRW contracts.Series) error {
	cpi, err := d.raw.GetSeries(ctx, contracts.IndicatorCPI)
	if err != nil {
		return fmt.Errorf("load CPI series: %w", err)
	}
	if real, ok := analysis.RealPrice(goldKRW, cpi).Latest(); ok {
		PrintKeyValue("Real", fmt.Sprintf("%.0f KRW/don (CPI-deflated)", real.Value), 8)
	} else {
		PrintInfo("Real price unavailable: no overlapping CPI data")
	}

	obs, err := d.raw.GetBySymbols(ctx, contracts.SymbolGoldUSD, contracts.SymbolDXY)
	if err != nil {
		return fmt.Errorf("load correlation inputs: %w", err)
	}
	pivot := contracts.PivotObservations(obs, contracts.SymbolGoldUSD, contracts.SymbolDXY)
	gold, _ := pivot.Column(contracts.SymbolGoldUSD)
	dollar, _ := pivot.Column(contracts.SymbolDXY)

	if corr, ok := latestValid(analysis.RollingCorrelation(gold, dollar, chartStatsWindow)); ok {
		PrintKeyValue("Corr", fmt.Sprintf("%.2f (gold vs DXY, %dd)", corr, chartStatsWindow), 8)
	} else {
		PrintInfo(fmt.Sprintf("Correlation unavailable: needs %d joined dates, got %d", chartStatsWindow, pivot.Len()))
	}

	if vol, ok := latestValid(analysis.AnnualizedVolatility(gold, chartStatsWindow)); ok {
		PrintKeyValue("Vol", fmt.Sprintf("%.1f%% annualized (%dd)", vol*100, chartStatsWindow), 8)
	} else {
		PrintInfo(fmt.Sprintf("Volatility unavailable: needs %d joined dates, got %d", chartStatsWindow+1, pivot.Len()))
	}

	return nil
}

// latestValid returns the last non-NaN rolling value
func latestValid(values []float64) (float64, bool) {
	for i := len(values) - 1; i >= 0; i-- {
		if !math.IsNaN(values[i]) {
			return values[i], true
		}
	}
	return 0, false
}
