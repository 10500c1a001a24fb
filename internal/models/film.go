package models

import "time"

// Film is a catalogue entry.
type Film struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Director  string    `json:"director,omitempty"`
	Year      int       `json:"year,omitempty"`
	CreatedAt time.Time `json:"-"`
}
