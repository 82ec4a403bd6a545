package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/aurum/internal/pipeline"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "파생 지표 산출 (Raw → Derived)",
	Long: `원천 데이터에서 파생 지표를 산출합니다.

산출 지표:
- GOLD_KRW_DON:   (USD/oz ÷ 31.1035) × 3.75 × 환율
- SILVER_KRW_DON: 은 기준 동일 공식

같은 날짜를 다시 산출하면 기존 값을 덮어씁니다.

Example:
  go run ./cmd/aurum derive`,
	RunE: runDerive,
}

func init() {
	rootCmd.AddCommand(deriveCmd)
}

func runDerive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := initDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	PrintStageHeader("Derive (Raw → Derived)")
	PrintKeyValue("Version", pipeline.CalculationVersion, 8)

	deriver := pipeline.NewDeriver(d.raw, d.derived, d.log)
	result, err := deriver.Run(ctx)
	if err != nil {
		return fmt.Errorf("derivation failed: %w", err)
	}

	PrintSeparator()
	PrintBatchResult(result.Written, result.Skipped, result.Failed)
	PrintSuccess("Derivation completed")
	return nil
}
