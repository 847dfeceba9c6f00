// Package planner handles the planning phase of rename operations.
//
// The planner turns an ordered list of files and a RuleConfig into preview
// entries: one proposed name per file plus a status. It never mutates the
// filesystem; metadata modes only read image headers through a
// MetadataReader.
//
// Key responsibilities:
//   - Sort the input so sequence numbers are reproducible
//   - Derive names for sequence, regex and metadata modes
//   - Apply case and web-safe post-processing
//   - Encode per-file failures as entry status instead of returning errors
package planner
