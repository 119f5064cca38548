package main

import "testing"

func TestIsSQLite(t *testing.T) {
	cases := map[string]bool{
		"corpus.db":      true,
		"corpus.sqlite":  true,
		"corpus.sqlite3": true,
		"corpus.json":    false,
		"corpus.jsonl":   false,
	}
	for path, want := range cases {
		if got := isSQLite(path); got != want {
			t.Errorf("isSQLite(%q) = %v, want %v", path, got, want)
		}
	}
}
