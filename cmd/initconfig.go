package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opql-tools/opqlcheck/internal/config"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a default " + config.DefaultPath + " configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath
		}
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(os.Stderr, "error: %s already exists\n", path)
			os.Exit(2)
		}
		if err := config.Write(path, config.Default()); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(2)
		}
		fmt.Println("wrote " + path)
	},
}
