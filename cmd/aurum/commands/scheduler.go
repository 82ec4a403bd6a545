package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/aurum/internal/pipeline"
	"github.com/wonny/aurum/internal/scheduler"
	"github.com/wonny/aurum/internal/scheduler/jobs"
)

// ingestLookbackDays bounds the daily job's collection window
const ingestLookbackDays = 7

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

등록되는 작업:
- daily_pipeline: 매일 오후 4시 (수집 → 파생 → 프리미엄)

Subcommands:
  start   - 스케줄러 시작
  run     - 특정 작업 즉시 실행

Example:
  go run ./cmd/aurum scheduler start
  go run ./cmd/aurum scheduler run daily_pipeline`,
}

var schedulerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "스케줄러 시작",
	Long:  `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다. Ctrl+C로 종료합니다.`,
	RunE:  runSchedulerStart,
}

var schedulerRunCmd = &cobra.Command{
	Use:   "run [job_name]",
	Short: "특정 작업 즉시 실행",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchedulerJob,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func buildScheduler(d *deps) (*scheduler.Scheduler, error) {
	sched := scheduler.New(d.log)

	daily := jobs.NewDailyPipelineJob(
		d.newIngestor(),
		pipeline.NewDeriver(d.raw, d.derived, d.log),
		pipeline.NewPremiumAnalyzer(d.derived, d.domestic, d.premium, d.log),
		ingestLookbackDays,
		d.log,
	)
	if err := sched.AddJob(daily); err != nil {
		return nil, fmt.Errorf("register daily job: %w", err)
	}

	return sched, nil
}

func runSchedulerStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := initDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	sched, err := buildScheduler(d)
	if err != nil {
		return err
	}

	PrintStageHeader("Scheduler")
	for _, name := range sched.GetAllJobs() {
		PrintKeyValue("Job", name, 4)
	}
	PrintSeparator()
	PrintInfo("Scheduler running - press Ctrl+C to stop")

	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
	PrintSuccess("Scheduler stopped")
	return nil
}

func runSchedulerJob(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	jobName := args[0]

	d, err := initDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	sched, err := buildScheduler(d)
	if err != nil {
		return err
	}

	PrintInfo(fmt.Sprintf("Running job %q", jobName))
	if err := sched.RunJob(jobName); err != nil {
		return err
	}

	// RunJob is asynchronous; block until the result lands in history
	for {
		time.Sleep(200 * time.Millisecond)

		history, err := sched.GetJobHistory(jobName)
		if err != nil {
			return err
		}
		if results := history.GetLatestResults(1); len(results) > 0 {
			result := results[0]
			if !result.Success {
				return fmt.Errorf("job %s failed: %s", jobName, result.Error)
			}
			PrintSuccess(fmt.Sprintf("Job %s completed in %s", jobName, result.Duration))
			return nil
		}
	}
}
