package main

import "testing"

func TestStripHTML(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain text stays put", "plain text stays put"},
		{"Tina &amp; Amy killed it", "Tina & Amy killed it"},
		{`watch <a href="http://t.co/x">this clip</a> now`, "watch this clip now"},
		{"<b>Boyhood</b> wins", "Boyhood wins"},
	}
	for _, c := range cases {
		if got := stripHTML(c.in); got != c.want {
			t.Errorf("stripHTML(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
