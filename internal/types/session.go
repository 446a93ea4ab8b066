package types

import (
	"time"

	"github.com/google/uuid"
)

// EditorMode is the active view of a document session.
type EditorMode string

// Editor modes. The session holds a single canonical markdown text; the two
// modes are views over it and switching never changes the text.
const (
	ModeEdit    EditorMode = "edit"
	ModePreview EditorMode = "preview"
)

// Valid reports whether m is a known editor mode.
func (m EditorMode) Valid() bool {
	return m == ModeEdit || m == ModePreview
}

// Session is a transient in-memory editing session. Nothing about it is
// persisted; when the process exits the session is gone.
type Session struct {
	ID         uuid.UUID           `json:"id"`
	Text       string              `json:"text"`
	Mode       EditorMode          `json:"mode"`
	LastResult *OptimizationResult `json:"last_result,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}
