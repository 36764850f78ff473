package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	EmptyRemoved Type = iota + 1
	TemporaryRemoved
	NameSanitized
	AccessChanged
	FileCopied
	ConflictRenamed
	DuplicateReplaced
	DuplicateIgnored
	ConflictSkipped
	SourceRemoved
	FileFailed
	VerifyFailed
)

var typeNames = [...]string{
	EmptyRemoved:      "EmptyRemoved",
	TemporaryRemoved:  "TemporaryRemoved",
	NameSanitized:     "NameSanitized",
	AccessChanged:     "AccessChanged",
	FileCopied:        "FileCopied",
	ConflictRenamed:   "ConflictRenamed",
	DuplicateReplaced: "DuplicateReplaced",
	DuplicateIgnored:  "DuplicateIgnored",
	ConflictSkipped:   "ConflictSkipped",
	SourceRemoved:     "SourceRemoved",
	FileFailed:        "FileFailed",
	VerifyFailed:      "VerifyFailed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single reconciliation action reported to the operator.
// Destructive actions (delete, overwrite, rename) are reported before they
// are performed so the action is auditable even if a later step fails.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string // the file the action concerns
	NewPath   string // the resulting path, for renames and copies
	Size      int64
	Detail    string // strategy-specific note, e.g. "newer identical"
	Error     error
}
