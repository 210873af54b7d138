package availability

import "strings"

// EngineVersion selects a resolution algorithm revision. It is threaded
// through unchanged so historical snapshots computed under an older
// revision replay identically.
type EngineVersion string

const (
	// EngineLegacy reproduces the original resolution behavior: personal
	// rotations are ignored and any covering absence is treated as a
	// full-day absence.
	EngineLegacy EngineVersion = "legacy"

	// EngineCurrent honors personal-rotation precedence and partial-day
	// absence windows.
	EngineCurrent EngineVersion = "current"
)

// ParseEngineVersion maps a persisted engine-version string to a known
// revision. Unknown values resolve to the current engine.
func ParseEngineVersion(s string) EngineVersion {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legacy", "v1":
		return EngineLegacy
	default:
		return EngineCurrent
	}
}
