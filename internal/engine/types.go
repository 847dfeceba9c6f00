package engine

import "time"

// RenameRecord is one completed rename.
type RenameRecord struct {
	// From is the path before the batch
	From string `json:"from"`

	// To is the path after the batch
	To string `json:"to"`
}

// OperationLog is the ordered record of renames produced by one execution call.
type OperationLog struct {
	// ID uniquely identifies the log
	ID string `json:"id"`

	// CreatedAt is when the batch ran
	CreatedAt time.Time `json:"createdAt"`

	// Records are the completed renames, in commit order
	Records []RenameRecord `json:"records"`
}

// stagedItem is a file parked under a temporary name between the two phases.
type stagedItem struct {
	temp     string
	final    string
	original string
}
