package planner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Status is the outcome of deriving a name for one file.
type Status string

// Preview statuses
const (
	StatusOK        Status = "ok"
	StatusUnchanged Status = "unchanged"
	StatusError     Status = "error"
)

// PreviewEntry is one row of a pending rename. ProposedName is advisory:
// the planner never applies it.
type PreviewEntry struct {
	// SourcePath is the absolute path of the file
	SourcePath string `json:"sourcePath"`

	// OriginalName is the base name of SourcePath
	OriginalName string `json:"originalName"`

	// ProposedName is the computed new base name
	ProposedName string `json:"proposedName"`

	// Status is ok, unchanged or error
	Status Status `json:"status"`

	// Message explains an error status
	Message string `json:"message,omitempty"`
}

// Eligible returns true if the entry should be handed to the executor.
func (e PreviewEntry) Eligible() bool {
	return e.Status == StatusOK
}

// ProposedPath returns the absolute path the entry would be renamed to.
func (e PreviewEntry) ProposedPath() string {
	return filepath.Join(filepath.Dir(e.SourcePath), e.ProposedName)
}

// Planner derives preview entries from a file list and a RuleConfig.
type Planner struct {
	meta   MetadataReader
	logger *zap.Logger
}

// New creates a new Planner. meta may be nil when metadata modes are not
// used; a metadata mode without a reader marks every entry unreadable.
func New(meta MetadataReader, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{
		meta:   meta,
		logger: logger,
	}
}

// GeneratePreview returns one entry per file, in lexicographic path order.
//
// The result depends only on the file list, the rules and (for metadata
// modes) the files' metadata. A failure on one file is recorded in its
// entry and never aborts the batch.
func (p *Planner) GeneratePreview(files []string, rules RuleConfig) []PreviewEntry {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	counter := rules.StartIndex
	entries := make([]PreviewEntry, 0, len(sorted))
	for _, path := range sorted {
		entry := p.deriveEntry(path, rules, &counter)
		if entry.Status == StatusError {
			p.logger.Debug("derivation failed",
				zap.String("path", path),
				zap.String("reason", entry.Message))
		}
		entries = append(entries, entry)
	}

	p.logger.Debug("preview generated",
		zap.String("mode", string(rules.Mode)),
		zap.Int("files", len(entries)))

	return entries
}

// deriveEntry computes the entry for a single file. A panic while deriving
// is turned into an error entry so the batch continues.
func (p *Planner) deriveEntry(path string, rules RuleConfig, counter *int) (entry PreviewEntry) {
	entry = PreviewEntry{
		SourcePath:   path,
		OriginalName: filepath.Base(path),
	}

	defer func() {
		if r := recover(); r != nil {
			entry.ProposedName = ""
			entry.Status = StatusError
			entry.Message = fmt.Sprint(r)
		}
	}()

	name, err := p.deriveName(path, entry.OriginalName, rules, counter)
	if err != nil {
		entry.ProposedName = name
		entry.Status = StatusError
		entry.Message = err.Error()
		return entry
	}

	name = postProcess(name, rules)
	entry.ProposedName = name
	if name == entry.OriginalName {
		entry.Status = StatusUnchanged
	} else {
		entry.Status = StatusOK
	}
	return entry
}

// deriveName dispatches on the rule mode. On error the returned name is the
// marker name to show for the entry.
func (p *Planner) deriveName(path, original string, rules RuleConfig, counter *int) (string, error) {
	_, ext := splitExt(original)
	ext = strings.ToLower(ext)

	switch rules.Mode {
	case ModeSequence, "":
		prefix := rules.Prefix
		if prefix == "" {
			prefix = parentName(path)
		}
		seq := zeroPad(*counter, rules.Padding)
		*counter++
		return prefix + rules.Suffix + "_" + seq + ext, nil

	case ModeRegex:
		if rules.RegexPattern == "" {
			return original, nil
		}
		name, err := substitute(rules.RegexPattern, rules.RegexReplacement, original)
		if err != nil {
			return RegexErrorName + ext, fmt.Errorf("invalid regex: %w", err)
		}
		return name, nil

	case ModeMetadataResolution, ModeMetadataDate, ModeMetadataModel:
		seq := zeroPad(*counter, rules.Padding)
		*counter++

		part, err := p.metadataPart(path, rules.Mode)
		if err != nil {
			return UnreadableImageName + ext, fmt.Errorf("unreadable image: %w", err)
		}
		return rules.Prefix + part + rules.Suffix + "_" + seq + ext, nil

	default:
		return original, fmt.Errorf("unknown mode %q", rules.Mode)
	}
}

// metadataPart reads the image and renders the fragment for mode.
func (p *Planner) metadataPart(path string, mode Mode) (string, error) {
	if p.meta == nil {
		return "", fmt.Errorf("no metadata reader configured")
	}

	meta, err := p.meta.ReadMetadata(path)
	if err != nil {
		return "", err
	}

	switch mode {
	case ModeMetadataResolution:
		return fmt.Sprintf("%dx%d", meta.Width, meta.Height), nil
	case ModeMetadataDate:
		return meta.Timestamp().Format(dateLayout), nil
	default:
		return sanitizeModel(meta.CameraModel), nil
	}
}

// postProcess applies the case transform and then the web-safe rule.
func postProcess(name string, rules RuleConfig) string {
	switch rules.Case {
	case CaseLower:
		name = strings.ToLower(name)
	case CaseUpper:
		name = strings.ToUpper(name)
	}

	if rules.WebSafe {
		name = strings.ReplaceAll(name, " ", "_")
	}
	return name
}
