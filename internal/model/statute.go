package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UntitledSection is shown in place of an empty title.
const UntitledSection = "Untitled Section"

// PreviewLength is the number of characters kept in a list preview.
const PreviewLength = 200

// Statute is one section of statutory text, flattened for display.
type Statute struct {
	ID           string `json:"id"`
	Jurisdiction string `json:"jurisdiction"`
	Title        string `json:"title"`
	Citation     string `json:"citation"`
	SourceURL    string `json:"url"`
	FullText     string `json:"law_text"`
}

// DisplayTitle returns the title or the untitled placeholder.
func (s Statute) DisplayTitle() string {
	if s.Title == "" {
		return UntitledSection
	}
	return s.Title
}

// Preview returns the first PreviewLength characters of the full text,
// followed by "..." when the text is longer.
func (s Statute) Preview() string {
	return Preview(s.FullText, PreviewLength)
}

// Preview truncates text to n runes and appends "..." when anything was cut.
func Preview(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "..."
}

// RawStatute is a row as the store returns it: identity columns plus the
// nested properties document.
type RawStatute struct {
	ID           ID             `json:"id"`
	Jurisdiction string         `json:"jurisdiction"`
	Properties   map[string]any `json:"properties"`
}

// Project flattens a raw row. Missing or null properties become empty strings.
func Project(raw RawStatute) Statute {
	return Statute{
		ID:           string(raw.ID),
		Jurisdiction: raw.Jurisdiction,
		Title:        property(raw.Properties, "title"),
		Citation:     property(raw.Properties, "citation"),
		SourceURL:    property(raw.Properties, "url"),
		FullText:     property(raw.Properties, "law_text"),
	}
}

// ProjectAll projects every row in order.
func ProjectAll(rows []RawStatute) []Statute {
	out := make([]Statute, 0, len(rows))
	for _, r := range rows {
		out = append(out, Project(r))
	}
	return out
}

func property(props map[string]any, key string) string {
	v, ok := props[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// ID is an opaque store-assigned identifier. It decodes from either a JSON
// string or a JSON number so integer and uuid keys both work.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: unsupported JSON value %s", b)
	}
	*id = ID(n.String())
	return nil
}
