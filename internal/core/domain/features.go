package domain

// Range is a closed numeric interval for a single audio attribute.
type Range struct {
	Min float64
	Max float64
}

// Mid returns the midpoint of the range, used as the request target value.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// FeatureTarget holds the audio attribute ranges a recommendation request is
// steered toward for a given mood.
type FeatureTarget struct {
	Valence      Range
	Energy       Range
	Danceability Range
	Tempo        Range
}

// featureTable is the authoritative mood-to-feature mapping. Tempo ordering
// invariant: the angry/energetic lower bounds stay above the calm/sad upper
// bounds.
var featureTable = map[Mood]FeatureTarget{
	MoodHappy:       {Valence: Range{0.7, 1.0}, Energy: Range{0.6, 0.9}, Danceability: Range{0.6, 0.9}, Tempo: Range{105, 135}},
	MoodEnergetic:   {Valence: Range{0.5, 0.9}, Energy: Range{0.8, 1.0}, Danceability: Range{0.6, 0.9}, Tempo: Range{120, 155}},
	MoodCalm:        {Valence: Range{0.5, 0.9}, Energy: Range{0.1, 0.35}, Danceability: Range{0.3, 0.6}, Tempo: Range{60, 90}},
	MoodSad:         {Valence: Range{0.0, 0.35}, Energy: Range{0.1, 0.4}, Danceability: Range{0.2, 0.5}, Tempo: Range{60, 90}},
	MoodAnxious:     {Valence: Range{0.1, 0.45}, Energy: Range{0.6, 0.9}, Danceability: Range{0.4, 0.7}, Tempo: Range{110, 140}},
	MoodAngry:       {Valence: Range{0.1, 0.4}, Energy: Range{0.8, 1.0}, Danceability: Range{0.4, 0.7}, Tempo: Range{120, 160}},
	MoodMelancholic: {Valence: Range{0.2, 0.5}, Energy: Range{0.2, 0.5}, Danceability: Range{0.3, 0.6}, Tempo: Range{65, 95}},
	MoodFocused:     {Valence: Range{0.45, 0.75}, Energy: Range{0.25, 0.55}, Danceability: Range{0.35, 0.65}, Tempo: Range{80, 110}},
	MoodNostalgic:   {Valence: Range{0.55, 0.85}, Energy: Range{0.35, 0.65}, Danceability: Range{0.4, 0.7}, Tempo: Range{85, 115}},
}

// Features returns the audio feature target for a mood. Unknown moods fall
// back to the calm profile.
func Features(m Mood) FeatureTarget {
	if ft, ok := featureTable[m]; ok {
		return ft
	}
	return featureTable[MoodCalm]
}

// genreTable maps each mood to its default recommendation genre seeds, used
// when the caller supplies no preferred genres and no seeds resolve.
var genreTable = map[Mood][]string{
	MoodHappy:       {"happy", "pop", "dance", "party", "summer"},
	MoodSad:         {"sad", "acoustic", "piano", "singer-songwriter"},
	MoodCalm:        {"chill", "ambient", "sleep", "new-age", "focus"},
	MoodEnergetic:   {"work-out", "edm", "dance", "electro", "techno"},
	MoodAngry:       {"metal", "hard-rock", "punk", "rock"},
	MoodAnxious:     {"ambient", "classical", "meditation", "calm"},
	MoodMelancholic: {"blues", "indie", "alternative", "sad"},
	MoodFocused:     {"focus", "instrumental", "lo-fi", "study"},
	MoodNostalgic:   {"indie", "folk", "acoustic", "singer-songwriter"},
}

// DefaultGenres returns the fallback genre seeds for a mood.
func DefaultGenres(m Mood) []string {
	if g, ok := genreTable[m]; ok {
		return g
	}
	return genreTable[MoodCalm]
}
