package memstore

import (
	"context"
	"testing"

	"github.com/ovationhq/ovation/pkg/ovation/corpus"
)

func TestSaveLoadCount(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	msgs := []corpus.Message{
		{ID: 1, Text: "first"},
		{ID: 2, Text: "second", User: &corpus.User{ID: 7, ScreenName: "fan"}},
	}
	if err := s.SaveMessages(ctx, msgs); err != nil {
		t.Fatalf("SaveMessages: %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil || n != 2 {
		t.Fatalf("Count = %d, err = %v", n, err)
	}

	loaded, err := s.LoadMessages(ctx)
	if err != nil {
		t.Fatalf("LoadMessages: %v", err)
	}
	if len(loaded) != 2 || loaded[1].User.ScreenName != "fan" {
		t.Errorf("loaded = %+v", loaded)
	}

	// the returned slice is a copy
	loaded[0].Text = "mutated"
	again, _ := s.LoadMessages(ctx)
	if again[0].Text != "first" {
		t.Error("LoadMessages exposed internal state")
	}
}
