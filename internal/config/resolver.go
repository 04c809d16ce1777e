package config

import (
	"github.com/bacman-dev/bacman/internal/models"
)

// Resolve computes the effective settings for every declared backup path:
// one output entry per input path, in declaration order, unconditionally.
// Resolution never fails; a reference to an undeclared profile simply
// contributes nothing, and the validator reports it separately.
func Resolve(cfg *models.Config) []models.ResolvedBackupPath {
	resolved := make([]models.ResolvedBackupPath, 0, len(cfg.BackupPaths))
	for _, bp := range cfg.BackupPaths {
		resolved = append(resolved, models.ResolvedBackupPath{
			Path:     bp.Path,
			Settings: mergeSettings(bp.Settings, effectiveProfile(cfg, bp)),
		})
	}
	return resolved
}

// effectiveProfile selects the profile governing bp: its own reference if
// it has one, otherwise the global default. An explicit reference that
// names no declared profile yields nil; it does not fall back to the
// global default.
func effectiveProfile(cfg *models.Config, bp models.BackupPath) *models.Settings {
	name := bp.Profile
	if name == nil {
		name = cfg.Global.DefaultProfile
	}
	if name == nil {
		return nil
	}
	if p, ok := cfg.Profiles[*name]; ok {
		return &p.Settings
	}
	return nil
}

// mergeSettings merges path-level overrides with the effective profile's
// settings. Overrides win field by field; backup_method lists are replaced
// wholesale, never unioned. A nil profile contributes nothing. The result
// is a deep copy owned by the caller.
func mergeSettings(override models.Settings, profile *models.Settings) models.Settings {
	merged := override
	if profile != nil {
		if merged.Encrypt == nil {
			merged.Encrypt = profile.Encrypt
		}
		if merged.BackupMethod == nil {
			merged.BackupMethod = profile.BackupMethod
		}
		if merged.BackupTo == nil {
			merged.BackupTo = profile.BackupTo
		}
		if merged.Interval == nil {
			merged.Interval = profile.Interval
		}
	}
	return merged.Clone()
}
