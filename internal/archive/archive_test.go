package archive_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/doc-archive/internal/archive"
	"github.com/JaimeStill/doc-archive/internal/archivetest"
	"github.com/JaimeStill/doc-archive/internal/attachments"
	"github.com/JaimeStill/doc-archive/internal/documents"
	"github.com/JaimeStill/doc-archive/internal/images"
	"github.com/JaimeStill/doc-archive/pkg/notes"
	"github.com/JaimeStill/doc-archive/pkg/pagination"
)

func newArchive(t *testing.T) (*archive.Archive, images.System, attachments.System) {
	t.Helper()

	db := archivetest.DB(t)
	store := archivetest.Storage(t)
	logger := archivetest.Logger()

	docs := documents.New(db, store, logger, pagination.Config{DefaultPageSize: 25, MaxPageSize: 200})
	imgs := images.New(db, store, logger)
	atts := attachments.New(db, logger)
	return archive.New(docs, imgs, atts, store, logger), imgs, atts
}

func TestAddDocument(t *testing.T) {
	a, imgs, atts := newArchive(t)
	ctx := context.Background()
	dir := t.TempDir()

	entry := archive.Entry{
		CreateCommand: documents.CreateCommand{Name: "20 في 04-04-2025", Date: "04-04-2025", Title: "أمر إداري"},
		Year:          "2025",
		Pages: []archive.Page{
			{Path: archivetest.WriteImage(t, dir, "front.jpg")},
			{Path: filepath.Join(dir, "absent.jpg")},
			{
				Path:       archivetest.WriteImage(t, dir, "annex.png"),
				Attachment: &notes.Fields{Number: "21", Date: "05-04-2025", Title: "مرفق"},
			},
		},
	}

	added, err := a.AddDocument(ctx, entry)
	if err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}

	if len(added.Images) != 2 || len(added.Failed) != 1 || len(added.Attachments) != 1 {
		t.Fatalf("added = %d images, %d failed, %d attachments", len(added.Images), len(added.Failed), len(added.Attachments))
	}
	if added.Images[1].PageNumber != 2 {
		t.Errorf("annex page = %d, want 2", added.Images[1].PageNumber)
	}
	if want := "رقم: 21 | تاريخ: 05-04-2025 | مضمون: مرفق"; added.Attachments[0].RawNotes != want {
		t.Errorf("RawNotes = %q, want %q", added.Attachments[0].RawNotes, want)
	}

	pages, _ := imgs.ListByDocument(ctx, added.Document.ID)
	if len(pages) != 2 {
		t.Errorf("stored pages = %d, want 2", len(pages))
	}

	found, err := atts.Search(ctx, attachments.FieldNumber, "21")
	if err != nil || len(found) != 1 || *found[0].ImageID != added.Images[1].ID {
		t.Errorf("attachment search = %+v, %v", found, err)
	}
}

func TestAddDocument_AppendsToArchivedDocument(t *testing.T) {
	a, imgs, _ := newArchive(t)
	ctx := context.Background()
	dir := t.TempDir()

	first, err := a.AddDocument(ctx, archive.Entry{
		CreateCommand: documents.CreateCommand{Name: "65 في 23-03-2025", Date: "23-03-2025"},
		Pages:         []archive.Page{{Path: archivetest.WriteImage(t, dir, "a.jpg")}},
	})
	if err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	if first.Reused {
		t.Error("first entry reported as reused")
	}

	second, err := a.AddDocument(ctx, archive.Entry{
		CreateCommand: documents.CreateCommand{Name: "٦٥ فى 23-3-2025", Title: "كتاب ملحق"},
		Pages: []archive.Page{
			{Path: archivetest.WriteImage(t, dir, "b.jpg")},
			{Path: archivetest.WriteImage(t, dir, "c.jpg")},
		},
	})
	if err != nil {
		t.Fatalf("second AddDocument() error = %v", err)
	}

	if !second.Reused || second.Document.ID != first.Document.ID {
		t.Fatalf("second entry = %s (reused %v), want %s", second.Document.ID, second.Reused, first.Document.ID)
	}
	if second.Document.Title != "كتاب ملحق" {
		t.Errorf("title = %q, want filled from entry", second.Document.Title)
	}

	pages, err := imgs.ListByDocument(ctx, first.Document.ID)
	if err != nil || len(pages) != 3 {
		t.Fatalf("pages = %d, %v; want 3", len(pages), err)
	}
	for i, p := range pages {
		if p.PageNumber != i+1 {
			t.Errorf("page[%d] = %d, want %d", i, p.PageNumber, i+1)
		}
	}
}

func TestAddDocument_Rejects(t *testing.T) {
	a, _, _ := newArchive(t)
	ctx := context.Background()

	if _, err := a.AddDocument(ctx, archive.Entry{CreateCommand: documents.CreateCommand{Name: "1"}}); !errors.Is(err, archive.ErrNoPages) {
		t.Errorf("AddDocument(no pages) error = %v, want ErrNoPages", err)
	}

	entry := archive.Entry{Pages: []archive.Page{{Path: "x.jpg"}}}
	if _, err := a.AddDocument(ctx, entry); !errors.Is(err, documents.ErrInvalidDocument) {
		t.Errorf("AddDocument(no name) error = %v, want ErrInvalidDocument", err)
	}
}

func TestHandler_Add(t *testing.T) {
	a, _, _ := newArchive(t)
	page := archivetest.WriteImage(t, t.TempDir(), "p.jpg")

	body, _ := json.Marshal(map[string]any{
		"name":  "30 في 01-05-2025",
		"pages": []map[string]string{{"path": page}},
	})

	req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	a.Handler().Add(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	var added archive.Added
	if err := json.Unmarshal(rec.Body.Bytes(), &added); err != nil {
		t.Fatal(err)
	}
	if added.Document == nil || added.Document.Name != "30 في 01-05-2025" || len(added.Images) != 1 {
		t.Errorf("added = %+v", added)
	}
}
