package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/goatdesk/pkg/internal/service"
)

var (
	adminPassword string

	adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "admin account helpers",
	}

	hashPasswordCmd = &cobra.Command{
		Use:   "hash-password",
		Short: "print a bcrypt hash for auth.admin_password_hash",
		Long:  "print a bcrypt hash for auth.admin_password_hash; without --password the first line of stdin is used",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw := adminPassword
			if pw == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}

				pw = strings.TrimRight(line, "\r\n")
			}

			hash, err := service.HashPassword(pw)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)

			return nil
		},
	}
)

// registerAdminCommands 注册管理员相关命令.
func registerAdminCommands() {
	hashPasswordCmd.Flags().StringVar(&adminPassword, "password", "", "password to hash")
	adminCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(adminCmd)
}
