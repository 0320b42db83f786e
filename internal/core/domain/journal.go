package domain

import (
	"time"

	"github.com/google/uuid"
)

// Song is a title/artist pair attached to a journal entry.
type Song struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// Label renders the song the way seed-track search expects it.
func (s Song) Label() string {
	return s.Title + " – " + s.Artist
}

// MoodEntry is one journal record: what the user felt and what they were
// listening to. Recent entries seed the mood-mix recommendation flow.
type MoodEntry struct {
	ID        string    `json:"id"`
	EntryDate time.Time `json:"entry_date"`
	Mood      Mood      `json:"mood"`
	Song      Song      `json:"song"`
	Notes     string    `json:"notes,omitempty"`
}

func NewMoodEntry(date time.Time, mood Mood, song Song, notes string) MoodEntry {
	return MoodEntry{
		ID:        uuid.NewString(),
		EntryDate: date,
		Mood:      mood,
		Song:      song,
		Notes:     notes,
	}
}
