package main

import (
	"context"
	"fmt"
	"os"

	"hospital-management-api/cmd/bootstrap"
	"hospital-management-api/internal/delivery/dto"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "hospital",
		Short:         "Hospital management API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	cfg, log, err := bootstrap.Load()
	if err != nil {
		return err
	}

	// Initialize application with all dependencies
	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Errorf("Failed to initialize application: %+v", err)
		return err
	}

	return app.Run()
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	for _, direction := range []struct {
		use   string
		short string
	}{
		{bootstrap.MigrateUp, "Apply pending migrations"},
		{bootstrap.MigrateDown, "Roll back the latest migration"},
	} {
		direction := direction
		cmd.AddCommand(&cobra.Command{
			Use:   direction.use,
			Short: direction.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, log, err := bootstrap.Load()
				if err != nil {
					return err
				}
				return bootstrap.RunMigrations(cfg, log, direction.use)
			},
		})
	}

	return cmd
}

func createAdminCmd() *cobra.Command {
	var req dto.CreateAdminRequest

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap.Load()
			if err != nil {
				return err
			}

			user, err := bootstrap.CreateAdmin(cmd.Context(), cfg, log, &req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created with id %s\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Login email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (at least 8 characters)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
