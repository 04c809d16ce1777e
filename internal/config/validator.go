package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bacman-dev/bacman/internal/models"
)

// PathChecker abstracts filesystem-existence checks so validation can be
// exercised against a simulated filesystem.
type PathChecker interface {
	Exists(path string) bool
}

// DefaultChecker checks existence against the real filesystem.
type DefaultChecker struct{}

// Exists reports whether path names an existing filesystem entry.
func (*DefaultChecker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Validator checks a parsed configuration document against every semantic
// rule. It never stops at the first problem: one pass records every
// violation in the document before a verdict is returned.
type Validator struct {
	checker PathChecker
	logger  zerolog.Logger
}

// NewValidator creates a validator backed by the real filesystem.
func NewValidator(logger zerolog.Logger) *Validator {
	return &Validator{checker: &DefaultChecker{}, logger: logger}
}

// NewValidatorWithChecker creates a validator with a custom existence
// checker (for testing).
func NewValidatorWithChecker(logger zerolog.Logger, checker PathChecker) *Validator {
	return &Validator{checker: checker, logger: logger}
}

type addFunc func(entity, field, format string, args ...any)

// Validate checks cfg and, on failure, returns a *ValidationError listing
// every violation found. It inspects both the document as authored and the
// resolved view: format rules run against declared values, and the
// mandatory-after-resolution rules run against the resolver's output.
func (v *Validator) Validate(cfg *models.Config) error {
	if cfg == nil {
		return &ValidationError{Violations: []Violation{
			{Entity: "document", Message: "configuration is nil"},
		}}
	}

	var violations []Violation
	add := func(entity, field, format string, args ...any) {
		violations = append(violations, Violation{
			Entity:  entity,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	// The global default profile must be declared.
	if ref := cfg.Global.DefaultProfile; ref != nil {
		if _, ok := cfg.Profiles[*ref]; !ok {
			add("global", "default_profile", "global.default_profile %q does not name a declared profile", *ref)
		}
	}

	// Per-path checks, in declaration order.
	for _, bp := range cfg.BackupPaths {
		if !v.checker.Exists(bp.Path) {
			add(bp.Path, "path", "backup path %q does not exist", bp.Path)
		}
		if bp.Profile != nil {
			if _, ok := cfg.Profiles[*bp.Profile]; !ok {
				add(bp.Path, "profile", "backup path %q: profile %q does not name a declared profile", bp.Path, *bp.Profile)
			}
		}
		v.checkSettings(add, bp.Path, fmt.Sprintf("backup path %q", bp.Path), bp.Settings)
	}

	// Profile definitions get the same field-format checks. One violation
	// at the profile, none repeated at the paths inheriting it.
	for _, name := range sortedProfileNames(cfg.Profiles) {
		v.checkSettings(add, name, fmt.Sprintf("profile %q", name), cfg.Profiles[name].Settings)
	}

	// After resolution, a usable method and destination must exist for
	// every path, no matter which level would have supplied them.
	for _, rp := range Resolve(cfg) {
		if rp.BackupMethod == nil {
			add(rp.Path, "backup_method", "backup path %q: no backup_method specified at any level", rp.Path)
		}
		if rp.BackupTo == nil {
			add(rp.Path, "backup_to", "backup path %q: no backup_to specified at any level", rp.Path)
		}
	}

	if len(violations) == 0 {
		v.logger.Debug().Int("paths", len(cfg.BackupPaths)).Msg("configuration valid")
		return nil
	}
	v.logger.Debug().Int("violations", len(violations)).Msg("configuration invalid")
	return &ValidationError{Violations: violations}
}

// checkSettings applies the field-format rules shared by backup paths and
// profiles. subject is the display prefix for messages, entity the
// identifier recorded on the violation.
func (v *Validator) checkSettings(add addFunc, entity, subject string, s models.Settings) {
	for _, method := range s.BackupMethod {
		if !models.IsBackupMethod(method) {
			add(entity, "backup_method", "%s: backup_method %q must be one of: %s",
				subject, method, strings.Join(models.BackupMethods(), ", "))
		}
	}
	if s.Interval != nil && !validInterval(*s.Interval) {
		add(entity, "interval", "%s: interval %q must contain a digit and end with one of: d, h, m",
			subject, *s.Interval)
	}
	if s.BackupTo != nil {
		v.checkBackupTo(add, entity, subject, *s.BackupTo)
	}
}

// checkBackupTo validates one destination: local-looking destinations
// (leading / or ./) must exist on disk, anything else must be a git@ or
// https:// remote. Remotes are checked lexically only; no network I/O.
func (v *Validator) checkBackupTo(add addFunc, entity, subject, dest string) {
	if strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "./") {
		if !v.checker.Exists(dest) {
			add(entity, "backup_to", "%s: backup_to %q does not exist", subject, dest)
		}
		return
	}
	if strings.HasPrefix(dest, "git@") || strings.HasPrefix(dest, "https://") {
		return
	}
	add(entity, "backup_to", "%s: backup_to %q must be a local path or start with git@ or https://",
		subject, dest)
}

// validInterval reports whether s contains at least one digit and ends in
// a recognised unit suffix (d, h or m).
func validInterval(s string) bool {
	if !strings.ContainsAny(s, "0123456789") {
		return false
	}
	return strings.HasSuffix(s, "d") || strings.HasSuffix(s, "h") || strings.HasSuffix(s, "m")
}

// sortedProfileNames keeps profile-level violations in a deterministic
// order across runs; map iteration order is not.
func sortedProfileNames(profiles map[string]models.Profile) []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
