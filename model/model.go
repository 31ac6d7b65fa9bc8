package model

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Pesquisa is a single survey result as exchanged with the backend.
type Pesquisa struct {
	ID            RecordID `json:"id,omitempty"`
	NomePesquisa  string   `json:"nome_pesquisa"`
	CreatedDate   string   `json:"created_date"`
	Nota1         float64  `json:"nota_1"`
	Nota2         float64  `json:"nota_2"`
	MediaPesquisa float64  `json:"media_pesquisa"`
}

// ComputeAverage is the only place the media of two scores is derived.
func ComputeAverage(a, b float64) float64 {
	return (a + b) / 2
}

func (p *Pesquisa) SetScores(nota1, nota2 float64) {
	p.Nota1 = nota1
	p.Nota2 = nota2
	p.MediaPesquisa = ComputeAverage(nota1, nota2)
}

func (p Pesquisa) Persisted() bool {
	return p.ID != ""
}

func FormatAverage(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// CreationStamp formats the created_date the way the backend has always
// received it: a locale short date, not ISO 8601.
func CreationStamp(now time.Time, layout string) string {
	return now.Format(layout)
}

// RecordID is the backend identifier. The backend is free to send it as a
// JSON number or a JSON string, and it must get the same token back. Numbers
// and plain strings are held as their text; a string that would read back as
// a number is held quoted, so the two never collapse into each other.
type RecordID string

var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

func quotedID(s string) bool {
	return jsonNumber.MatchString(s) || strings.HasPrefix(s, `"`)
}

// String is the id as shown in pages and URLs.
func (id RecordID) String() string {
	if strings.HasPrefix(string(id), `"`) {
		var s string
		if err := json.Unmarshal([]byte(id), &s); err == nil {
			return s
		}
	}
	return string(id)
}

// Same reports whether both ids name the same record, whatever form they
// arrived in.
func (id RecordID) Same(other RecordID) bool {
	return id.String() == other.String()
}

func (id RecordID) MarshalJSON() ([]byte, error) {
	s := string(id)
	switch {
	case jsonNumber.MatchString(s):
		return []byte(s), nil
	case strings.HasPrefix(s, `"`) && json.Valid([]byte(s)):
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("record id: %w", err)
		}
		if s != "" && quotedID(s) {
			quoted, err := json.Marshal(s)
			if err != nil {
				return fmt.Errorf("record id: %w", err)
			}
			*id = RecordID(quoted)
			return nil
		}
		*id = RecordID(s)
	default:
		if !jsonNumber.Match(data) {
			return fmt.Errorf("record id: unexpected token %q", data)
		}
		*id = RecordID(data)
	}
	return nil
}
