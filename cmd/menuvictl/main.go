// Command menuvictl holds maintenance operations that run against the
// database directly: seeding demo data and provisioning superadmins.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/menuvi/menuvi/internal/config"
	dbpkg "github.com/menuvi/menuvi/internal/db"
	"github.com/menuvi/menuvi/internal/seed"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "menuvictl",
		Short:         "Maintenance operations for the menuvi database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(seedCmd())
	root.AddCommand(createSuperadminCmd())
	return root
}

func seedCmd() *cobra.Command {
	var drop bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with a demo restaurant and menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			db := dbpkg.NewDB(config.Load())

			if err := seed.Demo(db, drop); err != nil {
				return err
			}
			fmt.Println("Seeded demo restaurant and menu.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&drop, "drop", false, "drop existing menu data before seeding")
	return cmd
}

func createSuperadminCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create-superadmin",
		Short: "Create a superadmin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			db := dbpkg.NewDB(config.Load())

			if err := seed.Superadmin(db, email, password); err != nil {
				return err
			}
			fmt.Printf("Superadmin %s created.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "superadmin email")
	cmd.Flags().StringVar(&password, "password", "", "superadmin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
