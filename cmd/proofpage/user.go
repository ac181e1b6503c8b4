package main

import (
	"errors"
	"fmt"

	"github.com/proofpage/internal/db"
	"github.com/proofpage/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	userEmail    string
	userPassword string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account and its draft proof page if missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		if userEmail == "" || userPassword == "" {
			return errors.New("--email and --password are required")
		}

		gdb, err := db.Open(cfg.DatabasePath, db.Options{Silent: true})
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		ctx := cmd.Context()
		user, created, err := service.NewAuthService(gdb).EnsureUser(ctx, userEmail, userPassword)
		if err != nil {
			return errors.New(service.Message(err))
		}
		page, err := service.NewPageService(gdb).Ensure(ctx, user)
		if err != nil {
			return err
		}

		logger.Info("user ready", zap.Uint("user_id", user.ID), zap.Bool("created", created), zap.String("slug", page.Slug))
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (page /p/%s)\n", user.Email, page.Slug)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already exists (page /p/%s)\n", user.Email, page.Slug)
		}
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "account email")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "account password")
	userCmd.AddCommand(userCreateCmd)
}
