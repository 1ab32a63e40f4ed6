// Package validation checks the shape of incoming hit payloads before any
// handler logic runs.
//
// The checks are deliberately defined over the raw request body rather than
// a bound struct: the API contract distinguishes "the body is not valid
// JSON" from "a field is missing" from "a field has the wrong type", each
// with its own message, and requires that an integer artist_id be told
// apart from a float or a numeric string. Decoding with json.Number keeps
// that distinction available.
//
// Validators never return errors for shape problems; any mismatch simply
// reports invalid.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"unicode"
)

// Payload is a parsed JSON request body. Numbers are json.Number values so
// integer-ness survives decoding. A nil Payload behaves as an empty body.
type Payload map[string]any

var errTrailingData = errors.New("trailing data after JSON value")

// Decode parses raw bytes as a single JSON value. It returns an error only
// for syntactically invalid JSON (including an empty body and trailing
// garbage). A well-formed value that is not an object yields an empty
// Payload, which downstream field checks then reject.
func Decode(raw []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errTrailingData
	}
	m, _ := v.(map[string]any)
	return Payload(m), nil
}

// Has reports whether the payload contains the given key.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// HasRequiredFields reports whether the payload is non-empty and carries
// both a "title" and an "artist_id" key. Presence only; types are checked
// by ValidTitle and ValidArtistID.
func (p Payload) HasRequiredFields() bool {
	return len(p) > 0 && p.Has("title") && p.Has("artist_id")
}

// ValidTitle reports whether the "title" field is a string made up solely
// of letters and whitespace, with at least one letter. Empty and
// whitespace-only strings fail, as do digits, punctuation, and symbols.
func (p Payload) ValidTitle() bool {
	s, ok := p["title"].(string)
	if !ok {
		return false
	}
	hasLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return hasLetter
}

// ValidArtistID reports whether the "artist_id" field is a JSON integer.
// Strings (even numeric ones), floats, booleans, and null all fail.
func (p Payload) ValidArtistID() bool {
	_, ok := p.ArtistID()
	return ok
}

// Title returns the "title" field when it is a string.
func (p Payload) Title() (string, bool) {
	s, ok := p["title"].(string)
	return s, ok
}

// ArtistID returns the "artist_id" field when it is a JSON integer.
func (p Payload) ArtistID() (int, bool) {
	n, ok := p["artist_id"].(json.Number)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return int(v), true
}
