// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sefaria

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// verseList decodes a "he" or "text" field of a texts response. Sefaria
// returns a JSON array of verse strings for a chapter, a bare string for a
// single-verse ref, and nested arrays for deeper texts; null entries appear
// where a language is missing for a verse. All of these flatten to one
// ordered list, with null becoming "".
type verseList []string

// decodeVerses decodes one raw verse field. An absent field is empty.
func decodeVerses(raw json.RawMessage) (verseList, error) {
	var v verseList
	if len(raw) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *verseList) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*v = nil
		return nil
	}
	var out []string
	if err := flattenVerses(data, &out); err != nil {
		return err
	}
	*v = out
	return nil
}

func flattenVerses(data []byte, out *[]string) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty verse value")
	}
	switch data[0] {
	case 'n':
		if string(data) != "null" {
			return fmt.Errorf("invalid verse value %.20q", data)
		}
		*out = append(*out, "")
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*out = append(*out, s)
		return nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for _, item := range items {
			if err := flattenVerses(item, out); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("verse value must be a string or array, got %.20q", data)
	}
}
