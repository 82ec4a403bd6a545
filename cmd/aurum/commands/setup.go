package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "데이터베이스 스키마 초기화",
	Long: `연결된 백엔드(PostgreSQL 또는 내장 SQLite)에 맞는 DDL을 실행해
테이블을 생성합니다. 이미 존재하는 테이블은 건드리지 않습니다.

Example:
  go run ./cmd/aurum setup`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := initDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	PrintStageHeader("Schema Setup")
	PrintKeyValue("Backend", string(d.gw.Backend()), 8)

	if err := d.gw.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("schema setup failed: %w", err)
	}

	PrintSuccess("Schema is ready")
	return nil
}
