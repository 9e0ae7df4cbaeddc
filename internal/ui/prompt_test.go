package ui

import (
	"errors"
	"testing"
)

func TestParseEntry(t *testing.T) {
	tests := []struct {
		input string
		want  entry
		err   bool
	}{
		{"szarru | LUGAL | king", entry{"šarru", "LUGAL", "king"}, false},
		{"dannu|dan-nu", entry{"dannu", "dan-nu", ""}, false},
		{" ,sabu | ,sa-bu | man ", entry{"ṣabu", "ṣa-bu", "man"}, false},
		{"dannu", entry{}, true},
		{"a | b | c | d", entry{}, true},
		{" | b | c", entry{}, true},
	}
	for _, tt := range tests {
		got, err := parseEntry(tt.input)
		if tt.err {
			if !errors.Is(err, errEntry) {
				t.Errorf("parseEntry(%q) err = %v, want errEntry", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseEntry(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseEntry(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestPrompt_Backspace(t *testing.T) {
	p := newPrompt("Append")
	for _, r := range "sa\u0301" {
		p.insert(r)
	}
	p.backspace()
	if p.text() != "s" {
		t.Errorf("text = %q, want %q", p.text(), "s")
	}
	p.backspace()
	p.backspace()
	if p.text() != "" {
		t.Errorf("text = %q, want empty", p.text())
	}
}
