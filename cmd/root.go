package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opql-tools/opqlcheck/internal/config"
)

const version = "0.1.0"

var (
	cfgFile     string
	filePath    string
	verbose     bool
	debugMode   bool
	testMode    bool
	versionFlag bool
	jsonOutput  bool
	colorMode   string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "opqlcheck [query]",
	Short:            "opqlcheck - a static syntax checker for OverpassQL",
	TraverseChildren: true,
	Run: func(cmd *cobra.Command, args []string) {
		switch {
		case versionFlag:
			fmt.Println("opqlcheck version " + version)
		case testMode:
			smokeTestCmd.Run(smokeTestCmd, args)
		default:
			checkCmd.Run(checkCmd, args)
		}
	},
}

// Execute runs the root command; main's sole job is to call this and
// translate a returned error into an exit code.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&filePath, "file", "f", "", "read the query from a file, directory, or glob instead of the first argument")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print tokens and full diagnostic text")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test", false, "run the built-in smoke test")
	rootCmd.PersistentFlags().BoolVar(&versionFlag, "version", false, "print the version and exit")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable verbose structured logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "path to the optional YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit results as JSON")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output: auto|always|never")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(smokeTestCmd)

	cobra.OnInitialize(initLogger, initColor)
}

func initLogger() {
	var err error
	if debugMode {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(2)
	}
}

func initColor() {
	switch colorMode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}
