package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bacman-dev/bacman/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Validate the configuration file and print the resolved backup plan
without watching or backing anything up. Every violation is reported,
not just the first one.`,
	RunE: validateConfig,
}

func validateConfig(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			log.Error().Err(err).Msg("cannot locate config file")
			return err
		}
		path = p
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Error().Str("file", path).Msg("config file not found")
		return fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("failed to read config")
		return &config.ReadError{Path: path, Err: err}
	}

	// Parse configuration
	parser := config.NewParser()
	cfg, err := parser.Parse(data)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("failed to parse config")
		return err
	}

	// Validate configuration
	validator := config.NewValidator(log.Logger)
	if err := validator.Validate(cfg); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			for _, v := range verr.Violations {
				log.Error().Str("entity", v.Entity).Str("field", v.Field).Msg(v.Message)
			}
		}
		log.Error().Msg("configuration validation failed")
		return err
	}

	resolved := config.Resolve(cfg)

	// Print configuration summary
	fmt.Println("Configuration is valid!")
	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  Config file: %s\n", path)
	fmt.Printf("  Profiles: %d\n", len(cfg.Profiles))
	fmt.Printf("  Backup paths: %d\n", len(resolved))
	if cfg.Global.DefaultProfile != nil {
		fmt.Printf("  Default profile: %s\n", *cfg.Global.DefaultProfile)
	}

	for _, rp := range resolved {
		fmt.Println()
		fmt.Printf("Path: %s\n", rp.Path)
		fmt.Printf("  Encrypt: %s\n", formatBoolSetting(rp.Encrypt))
		fmt.Printf("  Methods: %s\n", formatListSetting(rp.BackupMethod))
		fmt.Printf("  Backup to: %s\n", formatStringSetting(rp.BackupTo))
		fmt.Printf("  Interval: %s\n", formatStringSetting(rp.Interval))
	}

	return nil
}

func formatBoolSetting(b *bool) string {
	if b == nil {
		return "(unset)"
	}
	return strconv.FormatBool(*b)
}

func formatStringSetting(s *string) string {
	if s == nil {
		return "(unset)"
	}
	return *s
}

func formatListSetting(items []string) string {
	if items == nil {
		return "(unset)"
	}
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
