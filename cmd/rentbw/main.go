package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "rentbw",
	Short: "Run and operate the net/cpu rental market",
	Long: `rentbw hosts a rental market for network and CPU capacity.

Capacity follows a configured weight schedule, rentals are priced on a
utilization curve and expire after a fixed term. The serve command runs
periodic maintenance; the other commands act on the same state database,
also while serve is running. The database file is locked only for the
duration of a single action.`,
	SilenceUsage: true,
}

func init() {
	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultCfg, "path to the YAML config")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(configureCmd())
	rootCmd.AddCommand(tickCmd())
	rootCmd.AddCommand(rentCmd())
	rootCmd.AddCommand(stateCmd())
	rootCmd.AddCommand(ordersCmd())
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
