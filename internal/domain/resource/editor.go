// internal/domain/resource/editor.go
package resource

import "context"

// EditState is the state of one edit interaction
type EditState int

const (
	// StateClosed means no edit dialog is open
	StateClosed EditState = iota
	// StateOpen means a draft is being edited in place
	StateOpen
	// StateSaving means the save call is in flight
	StateSaving
)

// Record is a generic record shape for drafts: field name to value
type Record map[string]any

// Editor drives the edit interaction for one CRUD table:
// Closed -> Open(draft) -> Saving -> Closed on success, or back to Open with
// the error on failure. Create follows the same machine with an empty draft.
type Editor struct {
	state EditState
	draft Record
	isNew bool
	err   error
}

// NewEditor returns an editor in the closed state
func NewEditor() *Editor {
	return &Editor{state: StateClosed}
}

// Open starts editing a copy of the selected record
func (e *Editor) Open(record Record) {
	draft := make(Record, len(record))
	for key, value := range record {
		draft[key] = value
	}
	e.state = StateOpen
	e.draft = draft
	e.isNew = false
	e.err = nil
}

// OpenNew starts a create interaction with an empty draft
func (e *Editor) OpenNew() {
	e.state = StateOpen
	e.draft = Record{}
	e.isNew = true
	e.err = nil
}

// SetField edits one draft field in place
func (e *Editor) SetField(key string, value any) {
	if e.state != StateOpen {
		return
	}
	e.draft[key] = value
}

// Save runs the save call. On success the editor closes; on failure it
// returns to the open state carrying the error.
func (e *Editor) Save(ctx context.Context, save func(ctx context.Context, draft Record, isNew bool) error) error {
	if e.state != StateOpen {
		return nil
	}

	e.state = StateSaving
	if err := save(ctx, e.draft, e.isNew); err != nil {
		e.state = StateOpen
		e.err = err
		return err
	}

	e.state = StateClosed
	e.draft = nil
	e.err = nil
	return nil
}

// Close abandons the draft
func (e *Editor) Close() {
	e.state = StateClosed
	e.draft = nil
	e.err = nil
}

// State returns the current edit state
func (e *Editor) State() EditState { return e.state }

// Draft returns the draft under edit, nil when closed
func (e *Editor) Draft() Record { return e.draft }

// IsNew reports whether this is a create interaction
func (e *Editor) IsNew() bool { return e.isNew }

// Err returns the failure from the last save attempt, if any
func (e *Editor) Err() error { return e.err }

// serverOwned are the fields every payload excludes: identifiers,
// timestamps, computed aggregates.
var serverOwned = map[string]bool{
	"id":        true,
	"createdAt": true,
	"updatedAt": true,
}

// SanitizePayload strips server-owned fields from a draft before it is
// transmitted, so only caller-editable fields travel. extra names
// resource-specific exclusions such as expanded relations.
func SanitizePayload(record Record, extra ...string) Record {
	excluded := make(map[string]bool, len(serverOwned)+len(extra))
	for key := range serverOwned {
		excluded[key] = true
	}
	for _, key := range extra {
		excluded[key] = true
	}

	payload := make(Record, len(record))
	for key, value := range record {
		if !excluded[key] {
			payload[key] = value
		}
	}
	return payload
}
