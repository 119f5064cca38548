package ner

import (
	"reflect"
	"testing"
)

func TestQuotedSpans(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`so happy "Boyhood" won tonight`, []string{"Boyhood"}},
		{"loved “The Affair” this season", []string{"The Affair"}},
		{`no titles here`, nil},
		{`empty "" quotes`, nil},
	}
	for _, tc := range cases {
		if got := quotedSpans(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("quotedSpans(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
