package domain

import (
	"errors"
	"time"
)

var (
	// ErrNotFound means the destination or platform object no longer exists.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the bot lacks access to the guild resource.
	ErrForbidden = errors.New("forbidden")
)

// Message is a notification payload handed to the delivery collaborator.
type Message struct {
	Kind      string    `json:"kind"`
	Content   string    `json:"content,omitempty"`
	Username  string    `json:"username,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Title     string    `json:"title,omitempty"`
	URL       string    `json:"url,omitempty"`
	Body      string    `json:"body,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Color     int       `json:"color,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}
