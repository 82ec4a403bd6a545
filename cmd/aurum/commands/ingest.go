package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	ingestFrom string
	ingestTo   string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "원천 데이터 수집 (시세 + 거시지표 + 국내 실물)",
	Long: `외부 소스에서 원천 데이터를 수집해 저장합니다.

수집 소스:
- yahoo: 금/은 선물, 환율, DXY, S&P 500, KOSPI 일별 종가
- fred:  CPI, M2, 미국채 10년물, 기준금리 (API 키 필요)
- kgx:   국내 실물 금 시세 (3.75g 기준)

일부 소스가 실패해도 나머지 소스의 데이터는 저장됩니다.

Example:
  go run ./cmd/aurum ingest --from 2025-01-01
  go run ./cmd/aurum ingest --from 2025-01-01 --to 2025-06-30`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestFrom, "from", "", "시작 날짜 (YYYY-MM-DD, 기본: 1년 전)")
	ingestCmd.Flags().StringVar(&ingestTo, "to", "", "종료 날짜 (YYYY-MM-DD, 기본: 오늘)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	from := time.Now().AddDate(-1, 0, 0)
	to := time.Now()
	var err error
	if ingestFrom != "" {
		from, err = time.Parse("2006-01-02", ingestFrom)
		if err != nil {
			return fmt.Errorf("invalid from date: %w", err)
		}
	}
	if ingestTo != "" {
		to, err = time.Parse("2006-01-02", ingestTo)
		if err != nil {
			return fmt.Errorf("invalid to date: %w", err)
		}
	}

	d, err := initDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	PrintStageHeader("Ingest (Raw Observations)")
	PrintKeyValue("Period", fmt.Sprintf("%s ~ %s", from.Format("2006-01-02"), to.Format("2006-01-02")), 8)

	result, err := d.newIngestor().Run(ctx, from, to)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	PrintSeparator()
	PrintBatchResult(result.Written, result.Skipped, result.Failed)
	PrintSuccess("Ingest completed")
	return nil
}
