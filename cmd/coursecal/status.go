package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/coursecal/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show extraction engine availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		status := buildOrchestrator(cfg, logger).Status()

		fmt.Printf("llm:     available=%v", status.Available)
		if status.Model != "" {
			fmt.Printf(" model=%s", status.Model)
		}
		if status.Error != "" {
			fmt.Printf(" error=%q", status.Error)
		}
		fmt.Println()
		fmt.Println("pattern: available=true")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
