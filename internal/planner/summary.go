package planner

import "sort"

// Summary aggregates a preview for display.
type Summary struct {
	Total     int `json:"total"`
	OK        int `json:"ok"`
	Unchanged int `json:"unchanged"`
	Errors    int `json:"errors"`

	// Duplicates lists proposed paths claimed by more than one eligible entry.
	// Executing such a batch stops at the second claimant.
	Duplicates []string `json:"duplicates,omitempty"`
}

// Summarize counts entries per status and finds duplicate proposed paths.
// It does not change any entry.
func Summarize(entries []PreviewEntry) Summary {
	sum := Summary{Total: len(entries)}
	claims := make(map[string]int)

	for _, e := range entries {
		switch e.Status {
		case StatusOK:
			sum.OK++
			claims[e.ProposedPath()]++
		case StatusUnchanged:
			sum.Unchanged++
		case StatusError:
			sum.Errors++
		}
	}

	for path, n := range claims {
		if n > 1 {
			sum.Duplicates = append(sum.Duplicates, path)
		}
	}
	sort.Strings(sum.Duplicates)

	return sum
}

// HasDuplicates returns true if two eligible entries propose the same path.
func (s Summary) HasDuplicates() bool {
	return len(s.Duplicates) > 0
}
