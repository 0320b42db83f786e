package domain

import "testing"

func TestParseMood(t *testing.T) {
	tests := []struct {
		raw     string
		want    Mood
		wantErr bool
	}{
		{"happy", MoodHappy, false},
		{"melancholic", MoodMelancholic, false},
		{"Happy", "", true},
		{"", "", true},
		{"furious", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseMood(tc.raw)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseMood(%q) error = %v, wantErr %v", tc.raw, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseMood(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestMoodTitle(t *testing.T) {
	if got := MoodHappy.Title(); got != "Happy" {
		t.Errorf("got %q, want Happy", got)
	}
	if got := Mood("").Title(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestSongLabel(t *testing.T) {
	s := Song{Title: "Clair de Lune", Artist: "Debussy"}
	if got := s.Label(); got != "Clair de Lune – Debussy" {
		t.Errorf("got %q", got)
	}
}
