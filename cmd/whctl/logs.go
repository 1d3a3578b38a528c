package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Warehousing-api/internal/application/activity"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/postgres"
)

var keepDays int

var clearLogsCmd = &cobra.Command{
	Use:   "clear-logs",
	Short: "Borra entradas de la bitácora más antiguas que la retención",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(ctx context.Context, e *env, _ []string) error {
		svc := activity.NewService(postgres.NewActivityLogRepository(e.pool), e.log.Component("activity"), e.cfg.ActivityLog.RetentionDays)
		out, err := svc.ClearOld(ctx, keepDays)
		if err != nil {
			return err
		}
		fmt.Printf("%d entradas borradas (anteriores a %s)\n", out.Deleted, out.Cutoff.Format("2006-01-02 15:04"))
		return nil
	}),
}

func init() {
	clearLogsCmd.Flags().IntVar(&keepDays, "days", 0, "días a conservar (0 = retención configurada)")
	rootCmd.AddCommand(clearLogsCmd)
}
