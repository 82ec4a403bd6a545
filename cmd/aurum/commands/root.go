package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aurum",
	Short: "Aurum - 금 프리미엄 데이터 파이프라인",
	Long: `Aurum Unified CLI

국제 금 시세와 국내 실물 시세를 수집해 이론가를 산출하고,
김치 프리미엄·시장 국면·밸류에이션 경보·가격 예측을 제공합니다.

Usage:
  go run ./cmd/aurum [command]

Examples:
  go run ./cmd/aurum setup
  go run ./cmd/aurum ingest --from 2025-01-01
  go run ./cmd/aurum derive
  go run ./cmd/aurum premium
  go run ./cmd/aurum analyze
  go run ./cmd/aurum api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
