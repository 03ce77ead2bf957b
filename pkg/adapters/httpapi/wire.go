package httpapi

import (
	"time"

	"github.com/aretw0/noteboard/pkg/core"
)

// envelope is the response wrapper used by every endpoint.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type successEnvelope interface {
	ok() bool
	message() string
}

func (e *envelope[T]) ok() bool        { return e.Success }
func (e *envelope[T]) message() string { return e.Message }

// wireNote is a note as the backend sends it. Older deployments use `_id`
// for the identifier and `name` for the sender; both are accepted.
type wireNote struct {
	ID        string    `json:"id"`
	MongoID   string    `json:"_id"`
	ToName    string    `json:"toName"`
	FromName  string    `json:"fromName"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Likes     int       `json:"likes"`
}

func (w *wireNote) id() string {
	if w.ID != "" {
		return w.ID
	}
	return w.MongoID
}

func (w *wireNote) toCore() core.Note {
	sender := w.FromName
	if sender == "" {
		sender = w.Name
	}
	return core.Note{
		ID:            w.id(),
		RecipientName: w.ToName,
		SenderName:    sender,
		Message:       w.Message,
		CreatedAt:     w.CreatedAt,
		LikeCount:     max(w.Likes, 0),
	}
}
