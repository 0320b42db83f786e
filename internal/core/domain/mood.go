package domain

import "fmt"

// Mood is the closed set of emotional categories inferred from a photo.
type Mood string

const (
	MoodHappy       Mood = "happy"
	MoodCalm        Mood = "calm"
	MoodSad         Mood = "sad"
	MoodEnergetic   Mood = "energetic"
	MoodAnxious     Mood = "anxious"
	MoodAngry       Mood = "angry"
	MoodMelancholic Mood = "melancholic"
	MoodFocused     Mood = "focused"
	MoodNostalgic   Mood = "nostalgic"
)

// Moods lists every valid mood, in declaration order.
var Moods = []Mood{
	MoodHappy,
	MoodCalm,
	MoodSad,
	MoodEnergetic,
	MoodAnxious,
	MoodAngry,
	MoodMelancholic,
	MoodFocused,
	MoodNostalgic,
}

// ParseMood validates a raw string against the closed mood set.
func ParseMood(raw string) (Mood, error) {
	for _, m := range Moods {
		if string(m) == raw {
			return m, nil
		}
	}
	return "", fmt.Errorf("domain: unknown mood %q", raw)
}

// Title returns the mood with its first letter upper-cased, for playlist names.
func (m Mood) Title() string {
	s := string(m)
	if s == "" {
		return ""
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

func (m Mood) String() string { return string(m) }
