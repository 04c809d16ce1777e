// Package models contains the data structures used throughout bacman.
package models

import "strings"

// Config is the complete configuration document exactly as authored.
// No defaults are inferred and no precedence is applied here; resolution
// and validation live in internal/config.
type Config struct {
	Global      GlobalConfig       `toml:"global"`
	Profiles    map[string]Profile `toml:"profiles"`
	BackupPaths []BackupPath       `toml:"backup_paths"`
}

// GlobalConfig holds document-wide settings.
type GlobalConfig struct {
	DefaultProfile *string `toml:"default_profile"` // nil if not set
}

// Settings is the bundle of override values a profile or a backup path may
// supply. Every field is optional; nil (or a nil slice) means the level
// does not set the field.
type Settings struct {
	Encrypt      *bool    `toml:"encrypt"`
	BackupMethod []string `toml:"backup_method"`
	BackupTo     *string  `toml:"backup_to"`
	Interval     *string  `toml:"interval"`
}

// Clone returns a deep copy; mutations of one view never show through
// the other.
func (s Settings) Clone() Settings {
	out := s
	if s.Encrypt != nil {
		v := *s.Encrypt
		out.Encrypt = &v
	}
	if s.BackupMethod != nil {
		// make+copy keeps an empty list non-nil; append would collapse
		// "present but empty" into "absent".
		out.BackupMethod = make([]string, len(s.BackupMethod))
		copy(out.BackupMethod, s.BackupMethod)
	}
	if s.BackupTo != nil {
		v := *s.BackupTo
		out.BackupTo = &v
	}
	if s.Interval != nil {
		v := *s.Interval
		out.Interval = &v
	}
	return out
}

// Profile is a named, reusable bundle of default settings that backup
// paths opt into by name.
type Profile struct {
	Settings
}

// BackupPath is one declared filesystem location to protect. Its own
// settings take precedence over those of its profile.
type BackupPath struct {
	Path    string  `toml:"path"`
	Profile *string `toml:"profile"` // name reference, may dangle until validation
	Settings
}

// ResolvedBackupPath is the effective configuration for one backup path
// after precedence resolution. A field still nil here was never specified
// at any level; downstream executors apply their own defaults.
type ResolvedBackupPath struct {
	Path string
	Settings
}

// Recognised backup method identifiers.
const (
	MethodLocal   = "local"
	MethodGit     = "git"
	MethodGDrive  = "gdrive"
	MethodPDrive  = "pdrive"
	MethodDropbox = "dropbox"
)

var backupMethods = []string{MethodLocal, MethodGit, MethodGDrive, MethodPDrive, MethodDropbox}

// BackupMethods returns the fixed set of recognised backup method
// identifiers, in canonical order.
func BackupMethods() []string {
	return append([]string(nil), backupMethods...)
}

// IsBackupMethod reports whether s names a recognised backup method.
// Matching is case-insensitive.
func IsBackupMethod(s string) bool {
	switch strings.ToLower(s) {
	case MethodLocal, MethodGit, MethodGDrive, MethodPDrive, MethodDropbox:
		return true
	}
	return false
}

// ExtractPaths projects the ordered list of filesystem paths out of a
// resolved configuration, for handing to a filesystem watcher.
func ExtractPaths(resolved []ResolvedBackupPath) []string {
	paths := make([]string, 0, len(resolved))
	for _, r := range resolved {
		paths = append(paths, r.Path)
	}
	return paths
}
