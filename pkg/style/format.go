package style

import (
	"sort"

	"github.com/soundpress/gigcard/pkg/errors"
)

// Key identifies one of the fixed output formats.
type Key string

// Format keys.
const (
	FormatFeed  Key = "feed"
	FormatStory Key = "story"
)

// Format is an immutable width/height pair with a display label.
type Format struct {
	Key    Key
	Width  int
	Height int
	Label  string
}

// formats is the closed two-element format catalog.
var formats = map[Key]Format{
	FormatFeed:  {Key: FormatFeed, Width: 1080, Height: 1440, Label: "Feed (4:5)"},
	FormatStory: {Key: FormatStory, Width: 1080, Height: 1920, Label: "Story (9:16)"},
}

// GetFormat returns the format for key.
// Unknown keys are a caller programming error and fail loud.
func GetFormat(key Key) (Format, error) {
	f, ok := formats[key]
	if !ok {
		return Format{}, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %q (must be %q or %q)", key, FormatFeed, FormatStory)
	}
	return f, nil
}

// FormatKeys returns the format keys in sorted order.
func FormatKeys() []Key {
	keys := make([]Key, 0, len(formats))
	for k := range formats {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Formats returns all formats keyed by format key.
// The returned map is a copy; callers may not mutate the registry.
func Formats() map[Key]Format {
	out := make(map[Key]Format, len(formats))
	for k, v := range formats {
		out[k] = v
	}
	return out
}
