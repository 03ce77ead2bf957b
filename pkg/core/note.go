package core

import "time"

// Note is the central entity of the domain.
// It is a single addressed message, identified by a backend-assigned ID.
type Note struct {
	ID            string    `json:"id" yaml:"id"`
	RecipientName string    `json:"toName,omitempty" yaml:"toName,omitempty"`
	SenderName    string    `json:"fromName,omitempty" yaml:"fromName,omitempty"`
	Message       string    `json:"message" yaml:"message"`
	CreatedAt     time.Time `json:"createdAt" yaml:"createdAt"`
	LikeCount     int       `json:"likes" yaml:"likes"`
}

// NotePayload is the body of a create request.
// Empty fields are sent as absent.
type NotePayload struct {
	RecipientName string `json:"toName,omitempty"`
	SenderName    string `json:"fromName,omitempty"`
	Message       string `json:"message"`
}

// ViewState identifies what the display surface should present.
type ViewState string

const (
	ViewNotes     ViewState = "NOTES"
	ViewEmpty     ViewState = "EMPTY"
	ViewNoResults ViewState = "NO_RESULTS"
	ViewError     ViewState = "ERROR"
)

// NoteView pairs a note with its local like annotation.
// Likes is the displayed count; Note.LikeCount stays the server baseline.
type NoteView struct {
	Note  `yaml:",inline"`
	Liked bool `json:"liked" yaml:"liked"`
	Likes int  `json:"displayedLikes" yaml:"displayedLikes"`
}

// View is a rendered projection of the board.
type View struct {
	State   ViewState
	Notes   []NoteView
	Term    string
	Message string
}
