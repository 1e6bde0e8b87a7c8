package content

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes a single content item from r.
//
// The input must be a JSON object matching the [Item] shape:
//
//	{
//	  "id": "a1b2",
//	  "type": "concertReport",
//	  "title": "Wacken 2026: Tag Drei",
//	  "image_url": "https://cdn.example.com/hero.jpg",
//	  "categories": ["Festival"],
//	  "author": "Jens Brandt",
//	  "published": "2026-08-09T21:30:00Z",
//	  "locale": "de-DE"
//	}
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Item, error) {
	var it Item
	if err := json.NewDecoder(r).Decode(&it); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if it.Type == "" {
		it.Type = TypePost
	}
	return &it, nil
}

// LoadFile reads a JSON file at path and returns the decoded content item.
// The error wraps the underlying cause with the file path for context.
func LoadFile(path string) (*Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
