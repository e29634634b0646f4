package history_test

import (
	"context"
	"errors"
	"testing"

	"github.com/JaimeStill/doc-archive/internal/archivetest"
	"github.com/JaimeStill/doc-archive/internal/history"
)

func TestRecordRecent(t *testing.T) {
	sys := history.New(archivetest.DB(t), archivetest.Logger())
	ctx := context.Background()

	for _, term := range []string{"10", " 11 ", "نقل"} {
		if _, err := sys.Record(ctx, term, "name"); err != nil {
			t.Fatalf("Record(%q) error = %v", term, err)
		}
	}

	got, err := sys.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 || got[0].Term != "نقل" || got[1].Term != "11" {
		t.Errorf("Recent(2) = %+v, want newest first", got)
	}

	all, err := sys.Recent(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Errorf("Recent(0) = %d entries, %v; want 3", len(all), err)
	}
}

func TestRecord_EmptyTerm(t *testing.T) {
	sys := history.New(archivetest.DB(t), archivetest.Logger())

	if _, err := sys.Record(context.Background(), "   ", "name"); !errors.Is(err, history.ErrEmptyTerm) {
		t.Errorf("Record() error = %v, want ErrEmptyTerm", err)
	}
}
