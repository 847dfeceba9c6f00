package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/renamr/internal/fsops"
	"github.com/danieljhkim/renamr/internal/planner"
)

// DefaultExtensions is the allow-list used when the config names none.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".bmp", ".gif"}

// Config is the contents of config.yaml.
type Config struct {
	// Rules are the default naming rules; CLI flags override them
	Rules planner.RuleConfig `yaml:"rules"`

	// Extensions is the allow-list applied when scanning a directory
	Extensions []string `yaml:"extensions"`

	// SyncSidecar enables sidecar renaming by default
	SyncSidecar bool `yaml:"sync_sidecar"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	exts := make([]string, len(DefaultExtensions))
	copy(exts, DefaultExtensions)
	return &Config{
		Rules:      planner.DefaultRules(),
		Extensions: exts,
	}
}

// Load reads the config file at path over the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg.Extensions = NormalizeExtensions(cfg.Extensions)
	return cfg, nil
}

// Save writes the config to path as YAML, atomically.
func (c *Config) Save(fs fsops.FS, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks that the rule names in the config are known.
func (c *Config) Validate() error {
	return ValidateRules(&c.Rules)
}

// LoadRuleFile reads a standalone YAML rule set, as passed to --rules.
// Fields the file omits keep the values of DefaultRules.
func LoadRuleFile(path string) (planner.RuleConfig, error) {
	rules := planner.DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("failed to read rule file: %w", err)
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("failed to parse rule file: %w", err)
	}

	if err := ValidateRules(&rules); err != nil {
		return rules, fmt.Errorf("invalid rule file %s: %w", path, err)
	}

	return rules, nil
}

// ValidateRules canonicalizes the mode and case names in place and rejects
// a negative start index or padding.
func ValidateRules(r *planner.RuleConfig) error {
	mode, err := planner.ParseMode(string(r.Mode))
	if err != nil {
		return err
	}
	c, err := planner.ParseCase(string(r.Case))
	if err != nil {
		return err
	}
	if r.StartIndex < 0 {
		return fmt.Errorf("start index must not be negative, got %d", r.StartIndex)
	}
	if r.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %d", r.Padding)
	}
	r.Mode = mode
	r.Case = c
	return nil
}

// NormalizeExtensions lowercases each extension and ensures a leading dot.
// Empty entries and duplicates are dropped.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}
