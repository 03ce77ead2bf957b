package core

import "log/slog"

// BoardOption configures a Board.
type BoardOption func(*Board)

// WithLogger sets the logger for the board.
func WithLogger(logger *slog.Logger) BoardOption {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithLikesKey sets the LocalStore key used to persist liked note IDs.
// Defaults to DefaultLikesKey.
func WithLikesKey(key string) BoardOption {
	return func(b *Board) {
		if key != "" {
			b.likesKey = key
		}
	}
}

// WithRecipientRequired controls whether Submit rejects notes without a recipient.
// Enabled by default.
func WithRecipientRequired(required bool) BoardOption {
	return func(b *Board) {
		b.requireRecipient = required
	}
}
