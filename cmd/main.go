package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/go-task-manager/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "task-manager",
	Short: "Task management REST API",
	PersistentPreRun: func(*cobra.Command, []string) {
		app.InitDefaultLogger()
		app.MustReadConfig()
		app.MustInitApplicationLogger()
	},
	Run: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Run:   runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the schema of the configured store",
	Run: func(*cobra.Command, []string) {
		app.MustOpenStore()
		defer app.CloseStore()

		app.MustMigrateStore()
	},
}

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an active admin account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app.MustOpenStore()
		defer app.CloseStore()

		id, err := app.CreateAdmin(context.Background(), adminName, adminEmail, adminPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s\n", id)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "admin display name")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
	for _, flag := range []string{"name", "email", "password"} {
		_ = createAdminCmd.MarkFlagRequired(flag)
	}

	rootCmd.AddCommand(serveCmd, migrateCmd, createAdminCmd)
}

func runServe(*cobra.Command, []string) {
	app.MustOpenStore()
	app.MustMigrateStore()
	app.MustConnectRedis()

	os.Exit(app.MustListenAndServeHTTP())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
