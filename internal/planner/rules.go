package planner

import (
	"fmt"
	"strings"
)

// Mode selects how a proposed name is derived.
type Mode string

// Naming modes
const (
	ModeSequence           Mode = "sequence"
	ModeRegex              Mode = "regex"
	ModeMetadataResolution Mode = "metadata_resolution"
	ModeMetadataDate       Mode = "metadata_date"
	ModeMetadataModel      Mode = "metadata_model"
)

// Case is the case transform applied to the whole proposed name.
type Case string

// Case transforms
const (
	CaseNone  Case = "none"
	CaseLower Case = "lower"
	CaseUpper Case = "upper"
)

// RuleConfig is an immutable snapshot of naming parameters for one preview pass.
// Mode decides which of the mode-specific fields are consulted; the others are
// ignored rather than validated.
type RuleConfig struct {
	// Mode is the naming mode
	Mode Mode `yaml:"mode" json:"mode"`

	// Prefix is prepended to the derived name (sequence mode falls back to the
	// parent directory name when empty)
	Prefix string `yaml:"prefix" json:"prefix"`

	// Suffix is appended before the counter
	Suffix string `yaml:"suffix" json:"suffix"`

	// StartIndex is the first counter value
	StartIndex int `yaml:"start_index" json:"start_index"`

	// Padding is the zero-pad width of the counter
	Padding int `yaml:"padding" json:"padding"`

	// Case is the case transform applied after derivation
	Case Case `yaml:"case" json:"case"`

	// WebSafe replaces spaces with underscores after the case transform
	WebSafe bool `yaml:"web_safe" json:"web_safe"`

	// RegexPattern is the pattern matched against the full original name (regex mode)
	RegexPattern string `yaml:"regex_pattern" json:"regex_pattern"`

	// RegexReplacement is the replacement template (regex mode); \1 and \g<name>
	// group references are accepted
	RegexReplacement string `yaml:"regex_replacement" json:"regex_replacement"`
}

// DefaultRules returns the rules used when nothing is configured.
func DefaultRules() RuleConfig {
	return RuleConfig{
		Mode:       ModeSequence,
		StartIndex: 1,
		Padding:    3,
		Case:       CaseNone,
	}
}

// ParseMode converts a user-supplied mode name into a Mode.
// The short metadata names ("resolution", "date", "model") are accepted too.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequence", "seq", "":
		return ModeSequence, nil
	case "regex":
		return ModeRegex, nil
	case "metadata_resolution", "resolution":
		return ModeMetadataResolution, nil
	case "metadata_date", "date":
		return ModeMetadataDate, nil
	case "metadata_model", "model":
		return ModeMetadataModel, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// ParseCase converts a user-supplied case name into a Case.
func ParseCase(s string) (Case, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return CaseNone, nil
	case "lower":
		return CaseLower, nil
	case "upper":
		return CaseUpper, nil
	default:
		return "", fmt.Errorf("unknown case transform %q", s)
	}
}

// IsMetadata returns true for the modes that read image metadata.
func (m Mode) IsMetadata() bool {
	switch m {
	case ModeMetadataResolution, ModeMetadataDate, ModeMetadataModel:
		return true
	}
	return false
}
