package model

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestComputeAverage(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 0, 0},
		{5, 7, 6},
		{10, 10, 10},
		{8, 6, 7},
		{7.5, 8, 7.75},
	}
	for _, tt := range tests {
		if got := ComputeAverage(tt.a, tt.b); got != tt.want {
			t.Errorf("ComputeAverage(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSetScoresRecomputesAverage(t *testing.T) {
	p := Pesquisa{MediaPesquisa: 99}
	p.SetScores(8, 6)
	if p.MediaPesquisa != 7 {
		t.Fatalf("media = %v, want 7", p.MediaPesquisa)
	}
	p.SetScores(p.Nota1, 10)
	if p.MediaPesquisa != 9 {
		t.Fatalf("media = %v, want 9", p.MediaPesquisa)
	}
}

func TestFormatAverage(t *testing.T) {
	for v, want := range map[float64]string{0: "0.0", 6: "6.0", 10: "10.0", 7.75: "7.8"} {
		if got := FormatAverage(v); got != want {
			t.Errorf("FormatAverage(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestCreationStamp(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)
	if got := CreationStamp(now, "02/01/2006"); got != "19/10/2026" {
		t.Fatalf("stamp = %q", got)
	}
}

func TestRecordIDDecodesNumbersAndStrings(t *testing.T) {
	var records []Pesquisa
	err := json.Unmarshal([]byte(`[{"id":12,"nome_pesquisa":"A"},{"id":"abc","nome_pesquisa":"B"},{"nome_pesquisa":"C"}]`), &records)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if records[0].ID != "12" || records[1].ID != "abc" || records[2].ID != "" {
		t.Fatalf("ids = %q %q %q", records[0].ID, records[1].ID, records[2].ID)
	}
	if records[2].Persisted() {
		t.Fatal("record without id reported as persisted")
	}
}

func TestRecordIDEncodesNumericIDsAsNumbers(t *testing.T) {
	b, err := json.Marshal(Pesquisa{ID: "12", NomePesquisa: "A"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["id"] != float64(12) {
		t.Fatalf("id = %#v, want 12", raw["id"])
	}

	b, err = json.Marshal(Pesquisa{ID: "abc"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	raw = nil
	json.Unmarshal(b, &raw)
	if raw["id"] != "abc" {
		t.Fatalf("id = %#v, want abc", raw["id"])
	}
}

func TestRecordIDRoundTripsTheReceivedToken(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		String string
	}{
		{`{"id":42}`, `{"id":42}`, "42"},
		{`{"id":"42"}`, `{"id":"42"}`, "42"},
		{`{"id":"007"}`, `{"id":"007"}`, "007"},
		{`{"id":"+5"}`, `{"id":"+5"}`, "+5"},
		{`{"id":1e3}`, `{"id":1e3}`, "1e3"},
		{`{"id":-2.5}`, `{"id":-2.5}`, "-2.5"},
		{`{"id":"abc"}`, `{"id":"abc"}`, "abc"},
		{`{"id":"\"q"}`, `{"id":"\"q"}`, `"q`},
		{`{"id":null}`, `{}`, ""},
	}
	for _, tt := range tests {
		var in struct {
			ID RecordID `json:"id,omitempty"`
		}
		if err := json.Unmarshal([]byte(tt.in), &in); err != nil {
			t.Errorf("unmarshal %s: %v", tt.in, err)
			continue
		}
		if in.ID.String() != tt.String {
			t.Errorf("%s: String() = %q, want %q", tt.in, in.ID.String(), tt.String)
		}
		out, err := json.Marshal(in)
		if err != nil {
			t.Errorf("marshal %s: %v", tt.in, err)
			continue
		}
		if string(out) != tt.want {
			t.Errorf("%s: marshal = %s, want %s", tt.in, out, tt.want)
		}
		if !json.Valid(out) {
			t.Errorf("%s: marshal produced invalid JSON %s", tt.in, out)
		}
	}
}

func TestRecordIDSameAcrossForms(t *testing.T) {
	var fromString, fromNumber RecordID
	json.Unmarshal([]byte(`"42"`), &fromString)
	json.Unmarshal([]byte(`42`), &fromNumber)
	if !fromString.Same("42") || !fromNumber.Same("42") {
		t.Fatalf("ids %q %q do not match the path value 42", fromString, fromNumber)
	}
	if RecordID("7").Same("8") {
		t.Fatal("different ids reported as same")
	}
}

func TestRecordIDRejectsMalformedNumbers(t *testing.T) {
	var id RecordID
	if err := id.UnmarshalJSON([]byte(`007`)); err == nil {
		t.Fatalf("id = %q, want error", id)
	}
}
