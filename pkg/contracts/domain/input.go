package domain

// RawRecord is one loosely typed post as exported by a platform.
// Recognised keys: views, likes, comments, shares, postedAt,
// title|message|text, durationSec, platform.
type RawRecord map[string]interface{}

// Input is the canonical shape handed to the analytics core
type Input struct {
	Platforms map[string][]RawRecord `json:"platforms"`
}

// NewInput returns an empty input ready to be filled
func NewInput() Input {
	return Input{Platforms: make(map[string][]RawRecord)}
}

// Add appends records to a platform, creating it if needed
func (in Input) Add(platform string, records ...RawRecord) {
	in.Platforms[platform] = append(in.Platforms[platform], records...)
}

// RecordCount returns the number of raw records across all platforms
func (in Input) RecordCount() int {
	n := 0
	for _, recs := range in.Platforms {
		n += len(recs)
	}
	return n
}
