package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/model"
	"github.com/yeisme/goatdesk/pkg/internal/storage/db"
)

var (
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Database related commands",
	}

	dbTypesCmd = &cobra.Command{
		Use:     "types",
		Short:   "list all registered database types",
		Aliases: []string{"ls", "list"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered database types:")

			for _, dbType := range db.GetRegisteredDBTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+string(dbType))
			}
		},
	}

	dbMigrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "create or update the goat, video and message tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := db.New(ctx, &configs.GetConfig().DB)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Migrate(ctx, model.All()...); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d models\n", len(model.All()))

			return nil
		},
	}
)

// registerDBCommands 注册数据库相关命令.
func registerDBCommands() {
	rootCmd.AddCommand(dbCmd)

	dbCmd.AddCommand(dbTypesCmd)
	dbCmd.AddCommand(dbMigrateCmd)
}
