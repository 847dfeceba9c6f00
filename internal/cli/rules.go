package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/renamr/internal/config"
	"github.com/danieljhkim/renamr/internal/planner"
)

// ruleFlags holds the naming flags shared by preview and rename.
type ruleFlags struct {
	rulesFile   string
	mode        string
	prefix      string
	suffix      string
	start       int
	padding     int
	caseName    string
	webSafe     bool
	pattern     string
	replacement string
	extensions  []string
}

func (f *ruleFlags) register(cmd *cobra.Command) {
	defaults := planner.DefaultRules()
	flags := cmd.Flags()
	flags.StringVar(&f.rulesFile, "rules", "", "Load naming rules from a YAML file")
	flags.StringVarP(&f.mode, "mode", "m", string(defaults.Mode), "Naming mode (sequence, regex, resolution, date, model)")
	flags.StringVarP(&f.prefix, "prefix", "p", "", "Name prefix (sequence mode defaults to the folder name)")
	flags.StringVarP(&f.suffix, "suffix", "s", "", "Name suffix, placed before the counter")
	flags.IntVar(&f.start, "start", defaults.StartIndex, "First counter value")
	flags.IntVar(&f.padding, "padding", defaults.Padding, "Zero-pad width of the counter")
	flags.StringVar(&f.caseName, "case", string(defaults.Case), "Case transform (none, lower, upper)")
	flags.BoolVar(&f.webSafe, "web-safe", false, "Replace spaces with underscores")
	flags.StringVar(&f.pattern, "pattern", "", "Regex matched against the file name (regex mode)")
	flags.StringVar(&f.replacement, "replace", "", `Replacement template, \1 and \g<name> allowed (regex mode)`)
	flags.StringSliceVar(&f.extensions, "ext", nil, "File extensions to include (default from config)")
}

// resolve layers the rules: config file, then --rules, then explicitly set
// flags, and validates the result. It also returns the extension allow-list.
func (f *ruleFlags) resolve(cmd *cobra.Command, cfg *config.Config) (planner.RuleConfig, []string, error) {
	rules := cfg.Rules
	if f.rulesFile != "" {
		loaded, err := config.LoadRuleFile(f.rulesFile)
		if err != nil {
			return rules, nil, err
		}
		rules = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		mode, err := planner.ParseMode(f.mode)
		if err != nil {
			return rules, nil, err
		}
		rules.Mode = mode
	}
	if flags.Changed("case") {
		c, err := planner.ParseCase(f.caseName)
		if err != nil {
			return rules, nil, err
		}
		rules.Case = c
	}
	if flags.Changed("prefix") {
		rules.Prefix = f.prefix
	}
	if flags.Changed("suffix") {
		rules.Suffix = f.suffix
	}
	if flags.Changed("start") {
		rules.StartIndex = f.start
	}
	if flags.Changed("padding") {
		rules.Padding = f.padding
	}
	if flags.Changed("web-safe") {
		rules.WebSafe = f.webSafe
	}
	if flags.Changed("pattern") {
		rules.RegexPattern = f.pattern
	}
	if flags.Changed("replace") {
		rules.RegexReplacement = f.replacement
	}

	if err := config.ValidateRules(&rules); err != nil {
		return rules, nil, err
	}

	exts := cfg.Extensions
	if flags.Changed("ext") {
		exts = config.NormalizeExtensions(f.extensions)
	}

	return rules, exts, nil
}
