package images_test

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"image"
	_ "image/jpeg"
	"testing"

	"github.com/JaimeStill/doc-archive/internal/archivetest"
	"github.com/JaimeStill/doc-archive/internal/images"
	"github.com/JaimeStill/doc-archive/pkg/storage"
	"github.com/google/uuid"
)

type fixture struct {
	db    *sql.DB
	store storage.System
	sys   images.System
	doc   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := archivetest.DB(t)
	store := archivetest.Storage(t)
	doc := uuid.New()

	_, err := db.Exec(`INSERT INTO documents(id, name) VALUES($1, $2)`, doc, "65 في 23-03-2025")
	if err != nil {
		t.Fatalf("insert document: %v", err)
	}

	return &fixture{
		db:    db,
		store: store,
		sys:   images.New(db, store, archivetest.Logger()),
		doc:   doc,
	}
}

func (f *fixture) insert(t *testing.T, page int, src string) *images.Image {
	t.Helper()
	ctx := context.Background()

	key := images.StorageKey("", f.doc, page, ".jpg")
	if _, err := f.store.Import(ctx, key, src); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	img, err := f.sys.Insert(ctx, images.InsertCommand{
		DocumentID:       f.doc,
		Path:             key,
		OriginalFilename: "page.jpg",
		PageNumber:       page,
	})
	if err != nil {
		t.Fatalf("Insert(page %d) error = %v", page, err)
	}
	return img
}

func TestStorageKey(t *testing.T) {
	id := uuid.MustParse("7f1c0a56-3b1e-4f0e-9d7c-2a1b3c4d5e6f")

	tests := []struct {
		year string
		page int
		ext  string
		want string
	}{
		{"2025", 1, ".JPG", "2025/doc_7f1c0a56-3b1e-4f0e-9d7c-2a1b3c4d5e6f/image_0001.jpg"},
		{"", 12, ".tiff", "doc_7f1c0a56-3b1e-4f0e-9d7c-2a1b3c4d5e6f/image_0012.tiff"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := images.StorageKey(tt.year, id, tt.page, tt.ext); got != tt.want {
				t.Errorf("StorageKey() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := images.ThumbnailKey(id); got != "thumbnails/7f1c0a56-3b1e-4f0e-9d7c-2a1b3c4d5e6f_thumb.jpg" {
		t.Errorf("ThumbnailKey() = %q", got)
	}
}

func TestIsImageFile(t *testing.T) {
	for name, want := range map[string]bool{
		"a.jpg": true, "b.JPEG": true, "c.Png": true, "d.tif": true,
		"e.TIFF": true, "f.bmp": true, "g.pdf": false, "h": false,
	} {
		if got := images.IsImageFile(name); got != want {
			t.Errorf("IsImageFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestInsert_PagesAndThumbnail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	src := archivetest.WriteImage(t, t.TempDir(), "page.jpg")

	next, err := f.sys.NextPageNumber(ctx, f.doc)
	if err != nil || next != 1 {
		t.Fatalf("NextPageNumber() = %d, %v; want 1", next, err)
	}

	first := f.insert(t, 1, src)
	f.insert(t, 2, src)

	next, err = f.sys.NextPageNumber(ctx, f.doc)
	if err != nil || next != 3 {
		t.Errorf("NextPageNumber() = %d, %v; want 3", next, err)
	}

	if n, _ := f.sys.Count(ctx, f.doc); n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}

	if ok, _ := f.store.Validate(ctx, images.ThumbnailKey(first.ID)); !ok {
		t.Fatal("thumbnail not stored on insert")
	}

	thumb, err := f.sys.Thumbnail(ctx, first.ID)
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if cfg.Width > images.ThumbnailWidth || cfg.Height > images.ThumbnailHeight {
		t.Errorf("thumbnail %dx%d exceeds bounds", cfg.Width, cfg.Height)
	}

	list, err := f.sys.ListByDocument(ctx, f.doc)
	if err != nil {
		t.Fatalf("ListByDocument() error = %v", err)
	}
	if len(list) != 2 || list[0].PageNumber != 1 || list[1].PageNumber != 2 {
		t.Errorf("ListByDocument() = %+v", list)
	}
	if list[0].Sides != 1 {
		t.Errorf("Sides = %d, want 1", list[0].Sides)
	}
}

func TestInsert_DuplicatePage(t *testing.T) {
	f := newFixture(t)
	src := archivetest.WriteImage(t, t.TempDir(), "page.jpg")
	f.insert(t, 1, src)

	_, err := f.sys.Insert(context.Background(), images.InsertCommand{
		DocumentID: f.doc,
		Path:       images.StorageKey("", f.doc, 1, ".png"),
		PageNumber: 1,
	})
	if !errors.Is(err, images.ErrDuplicate) {
		t.Errorf("Insert() error = %v, want ErrDuplicate", err)
	}
}

func TestInsert_UndecodableFileKeepsRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	src := archivetest.WriteFile(t, t.TempDir(), "broken.jpg", []byte("not an image"))
	img := f.insert(t, 1, src)

	if ok, _ := f.store.Validate(ctx, images.ThumbnailKey(img.ID)); ok {
		t.Error("thumbnail stored for undecodable file")
	}
	if _, err := f.sys.Thumbnail(ctx, img.ID); !errors.Is(err, images.ErrThumbnail) {
		t.Errorf("Thumbnail() error = %v, want ErrThumbnail", err)
	}
}

func TestData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	img := f.insert(t, 1, archivetest.WriteImage(t, t.TempDir(), "page.jpg"))

	data, contentType, err := f.sys.Data(ctx, img.ID)
	if err != nil {
		t.Fatalf("Data() error = %v", err)
	}
	if contentType != "image/jpeg" || len(data) == 0 {
		t.Errorf("Data() = %d bytes, %q", len(data), contentType)
	}

	if err := f.store.Delete(ctx, img.Path); err != nil {
		t.Fatal(err)
	}
	if _, _, err := f.sys.Data(ctx, img.ID); !errors.Is(err, images.ErrFileNotStored) {
		t.Errorf("Data(missing file) error = %v, want ErrFileNotStored", err)
	}
}

func TestSetNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	img := f.insert(t, 1, archivetest.WriteImage(t, t.TempDir(), "page.jpg"))

	notes := "رقم: 11 | تاريخ: 2-1-2025"
	got, err := f.sys.SetNotes(ctx, img.ID, &notes)
	if err != nil {
		t.Fatalf("SetNotes() error = %v", err)
	}
	if got.Notes == nil || *got.Notes != notes {
		t.Errorf("Notes = %v, want %q", got.Notes, notes)
	}

	linked := func() int {
		t.Helper()
		var n int
		if err := f.db.QueryRow(`SELECT COUNT(*) FROM attachments WHERE image_id = $1`, img.ID).Scan(&n); err != nil {
			t.Fatal(err)
		}
		return n
	}
	if n := linked(); n != 1 {
		t.Errorf("linked attachments = %d, want 1", n)
	}

	dateOnly := "تاريخ: 2-1-2025"
	if _, err := f.sys.SetNotes(ctx, img.ID, &dateOnly); err != nil {
		t.Fatalf("SetNotes(date only) error = %v", err)
	}
	if n := linked(); n != 0 {
		t.Errorf("linked attachments for notes without number or title = %d, want 0", n)
	}

	blank := "  "
	got, err = f.sys.SetNotes(ctx, img.ID, &blank)
	if err != nil || got.Notes != nil {
		t.Errorf("SetNotes(blank) = %v, %v; want cleared", got.Notes, err)
	}

	if _, err := f.sys.SetNotes(ctx, uuid.New(), &notes); !errors.Is(err, images.ErrNotFound) {
		t.Errorf("SetNotes(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	img := f.insert(t, 1, archivetest.WriteImage(t, t.TempDir(), "page.jpg"))

	if err := f.sys.Delete(ctx, img.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if ok, _ := f.store.Validate(ctx, img.Path); ok {
		t.Error("page file remains")
	}
	if _, err := f.sys.Find(ctx, img.ID); !errors.Is(err, images.ErrNotFound) {
		t.Errorf("Find() error = %v, want ErrNotFound", err)
	}
}
