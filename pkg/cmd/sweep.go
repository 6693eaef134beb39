package cmd

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	ctxPkg "github.com/yeisme/goatdesk/pkg/context"
	"github.com/yeisme/goatdesk/pkg/internal/model"
	"github.com/yeisme/goatdesk/pkg/internal/service"
	"github.com/yeisme/goatdesk/pkg/internal/storage"
)

var (
	sweepDryRun bool

	sweepCmd = &cobra.Command{
		Use:   "sweep",
		Short: "delete uploaded images that no goat listing references",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			mgr, err := storage.Init(ctx)
			if err != nil {
				return err
			}
			defer mgr.Close()

			if err := mgr.DB.Migrate(ctx, model.All()...); err != nil {
				return err
			}

			ctx = ctxPkg.WithStorageManager(ctx, mgr)

			res, err := service.NewSweepService(ctx).Run(ctx, service.SweepOptions{DryRun: sweepDryRun, Trigger: "cli"})
			if err != nil {
				return err
			}

			b, err := sonic.ConfigStd.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal result: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(b))

			return nil
		},
	}
)

// registerSweepCommands 注册孤儿图片清理命令.
func registerSweepCommands() {
	sweepCmd.Flags().BoolVar(&sweepDryRun, "dry-run", false, "only report orphaned files")
	rootCmd.AddCommand(sweepCmd)
}
