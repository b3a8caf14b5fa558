package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	// Missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "signet",
		Short: "Email-OTP identity service with social login",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")

	root.AddCommand(newServeCmd(), newMigrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
