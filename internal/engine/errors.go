package engine

import (
	"errors"

	"github.com/danieljhkim/renamr/internal/fsops"
)

var (
	// ErrNothingToDo indicates no preview entry was eligible for renaming.
	ErrNothingToDo = errors.New("nothing to rename")

	// ErrNothingToUndo indicates the history stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrValidation indicates a proposed name failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrTargetExists indicates a rename destination is occupied by a file
	// outside the batch.
	ErrTargetExists = fsops.ErrExists

	// ErrStranded indicates files were left under their temporary names
	// because they could not be moved back.
	ErrStranded = errors.New("files left under temporary names")
)
