package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time.
	Version = "dev"

	// Configuration flags.
	configFile string
	verbose    bool
	quiet      bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "bacman",
	Short: "A backup configuration manager",
	Long: `bacman loads a layered backup configuration, checks every rule
against it and reports all problems at once.

Settings cascade across three levels:
  1. per-path overrides
  2. the path's profile (or the global default profile)
  3. nothing (the field stays unset)

Use "validate" to check a configuration and print the resolved plan, or
"run" to watch the configured backup paths for changes.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyEnvOverrides(cmd)
		setupLogging()
	},
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default: config.toml in the platform config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose (debug) output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "enable quiet mode (errors only)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output logs in JSON format")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}

// applyEnvOverrides lets BACMAN_* environment variables stand in for
// flags not given on the command line. Flags win over environment.
func applyEnvOverrides(cmd *cobra.Command) {
	v := viper.New()
	v.SetEnvPrefix("bacman")
	v.AutomaticEnv()

	flags := cmd.Flags()
	if !flags.Changed("config") && v.IsSet("config") {
		configFile = v.GetString("config")
	}
	if !flags.Changed("verbose") && v.GetBool("verbose") {
		verbose = true
	}
	if !flags.Changed("quiet") && v.GetBool("quiet") {
		quiet = true
	}
	if !flags.Changed("json") && v.GetBool("json") {
		jsonOutput = true
	}
}

func setupLogging() {
	// Set output format
	if jsonOutput {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		output.FormatLevel = func(i interface{}) string {
			if s, ok := i.(string); ok {
				return strings.ToUpper(s)
			}
			return ""
		}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set log level
	switch {
	case quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
