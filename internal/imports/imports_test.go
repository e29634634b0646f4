package imports_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/doc-archive/internal/archivetest"
	"github.com/JaimeStill/doc-archive/internal/documents"
	"github.com/JaimeStill/doc-archive/internal/images"
	"github.com/JaimeStill/doc-archive/internal/imports"
	"github.com/JaimeStill/doc-archive/pkg/filename"
	"github.com/JaimeStill/doc-archive/pkg/pagination"
	"github.com/JaimeStill/doc-archive/pkg/storage"
	"github.com/google/uuid"
)

type fixture struct {
	docs       documents.System
	imgs       images.System
	store      storage.System
	reconciler *imports.Reconciler
	dir        string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := archivetest.DB(t)
	store := archivetest.Storage(t)
	logger := archivetest.Logger()

	f := &fixture{
		docs:  documents.New(db, store, logger, pagination.Config{DefaultPageSize: 25, MaxPageSize: 200}),
		imgs:  images.New(db, store, logger),
		store: store,
		dir:   t.TempDir(),
	}
	f.reconciler = imports.New(f.docs, f.imgs, store, nil, logger)
	return f
}

func (f *fixture) files(t *testing.T, names ...string) []string {
	t.Helper()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = archivetest.WriteImage(t, f.dir, n)
	}
	return out
}

func TestPlan(t *testing.T) {
	files := []string{
		"/in/65 في 23-3-2025 ص_0002.jpg",
		"/in/random_scan.jpg",
		"/in/65 في 23/3/2025 ص.jpg",
		"/in/9 في 1-1-2025 و.jpg",
		"/in/65 في 23-3-2025 و_0001.jpg",
		"/in/صادر.png",
	}

	batch := imports.Plan(filename.NewParser(nil), files)

	if batch.Total != 6 || len(batch.Documents) != 2 {
		t.Fatalf("Plan() = %d total, %d documents", batch.Total, len(batch.Documents))
	}

	if batch.Documents[0].Number != "9" {
		t.Errorf("first document = %s, want 9", batch.Documents[0].Number)
	}

	doc := batch.Documents[1]
	if doc.Name != "65 في 23-03-2025" || doc.Department != "Security Personnel Division — Ana" {
		t.Errorf("document = %q / %q", doc.Name, doc.Department)
	}

	want := []string{files[2], files[4], files[0]}
	if len(doc.Files) != len(want) {
		t.Fatalf("files = %+v", doc.Files)
	}
	for i, w := range want {
		if doc.Files[i].Path != w {
			t.Errorf("file[%d] = %s, want %s", i, doc.Files[i].Path, w)
		}
	}

	if batch.UnrecognizedCount() != 2 || len(batch.Unrecognized) != 2 {
		t.Fatalf("unrecognized = %+v", batch.Unrecognized)
	}
	if batch.Unrecognized[0].Name != imports.UnrecognizedNoDept {
		t.Errorf("first fallback = %q", batch.Unrecognized[0].Name)
	}
	if batch.Unrecognized[1].Name != imports.UnrecognizedName("Security Personnel Division — Ana") {
		t.Errorf("second fallback = %q", batch.Unrecognized[1].Name)
	}
}

func TestImport_IdempotentWithPageContinuation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	batch := f.files(t,
		"65 في 23-3-2025 ص_0001.jpg",
		"65 في 23-3-2025 ص.jpg",
		"65 في 23-3-2025 ص_0002.jpg",
	)

	first, err := f.reconciler.Import(ctx, batch, imports.Options{Year: "2025"})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if first.Imported != 3 || first.Created != 1 || first.Documents != 1 {
		t.Fatalf("first run = %s", first.Summary())
	}

	second, err := f.reconciler.Import(ctx, batch, imports.Options{Year: "2025"})
	if err != nil {
		t.Fatalf("second Import() error = %v", err)
	}
	if second.Created != 0 || second.Reused != 1 || second.Imported != 3 {
		t.Errorf("second run = %s", second.Summary())
	}

	docs, err := f.docs.FindByNumberAndDate(ctx, "65", "23-03-2025")
	if err != nil || len(docs) != 1 {
		t.Fatalf("documents for (65, 23-03-2025) = %d, %v; want 1", len(docs), err)
	}

	pages, err := f.imgs.ListByDocument(ctx, docs[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 6 {
		t.Fatalf("pages = %d, want 6", len(pages))
	}

	wantOriginal := []string{
		"65 في 23-3-2025 ص.jpg",
		"65 في 23-3-2025 ص_0001.jpg",
		"65 في 23-3-2025 ص_0002.jpg",
	}
	for i, p := range pages {
		if p.PageNumber != i+1 {
			t.Errorf("page[%d].PageNumber = %d, want %d", i, p.PageNumber, i+1)
		}
		if p.OriginalFilename != wantOriginal[i%3] {
			t.Errorf("page[%d] = %q, want %q", i, p.OriginalFilename, wantOriginal[i%3])
		}
	}

	if want := images.StorageKey("2025", docs[0].ID, 4, ".jpg"); pages[3].Path != want {
		t.Errorf("page 4 path = %q, want %q", pages[3].Path, want)
	}
	if pages[1].Sequence == nil || *pages[1].Sequence != "0001" {
		t.Errorf("page 2 sequence = %v, want 0001", pages[1].Sequence)
	}
}

func TestImport_CorruptedPathsAreSkipped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	batch := f.files(t,
		"10 في 1-1-2025 ص.jpg",
		"10 في 1-1-2025 ص_0001.jpg",
		"11 في 2-1-2025 و.png",
	)
	batch = append(batch,
		filepath.Join(f.dir, "missing", "10 في 1-1-2025 ص_0002.jpg"),
		filepath.Join(f.dir, "12 في 3-1-2025 و.jpg"),
	)

	result, err := f.reconciler.Import(ctx, batch, imports.Options{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if result.Imported != len(batch)-2 || result.Failed != 2 {
		t.Errorf("result = %s, want %d imported", result.Summary(), len(batch)-2)
	}

	for _, item := range result.Items {
		if item.Status == imports.StatusFailed && item.Error == "" {
			t.Errorf("failed item %s has no error", item.File)
		}
	}

	docs, _ := f.docs.FindByNumberAndDate(ctx, "10", "01-01-2025")
	if len(docs) != 1 {
		t.Fatalf("documents for 10 = %d", len(docs))
	}
	next, _ := f.imgs.NextPageNumber(ctx, docs[0].ID)
	if next != 3 {
		t.Errorf("NextPageNumber() = %d, want 3 (failed copy does not consume a page)", next)
	}
}

func TestImport_Unrecognized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	batch := f.files(t, "random_scan.jpg", "وارد 2025.jpg", "5 في 1-1-2025 ص.jpg")

	skipped, err := f.reconciler.Import(ctx, batch, imports.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if skipped.Imported != 1 || skipped.Skipped != 2 || skipped.Unrecognized != 2 {
		t.Errorf("without unrecognized = %s", skipped.Summary())
	}

	included, err := f.reconciler.Import(ctx, batch[:2], imports.Options{IncludeUnrecognized: true})
	if err != nil {
		t.Fatal(err)
	}
	if included.Imported != 2 || included.Created != 2 {
		t.Errorf("with unrecognized = %s", included.Summary())
	}

	for _, name := range []string{
		imports.UnrecognizedNoDept,
		imports.UnrecognizedName("Security Personnel Section — Anbar"),
	} {
		docs, err := f.docs.FindByName(ctx, name)
		if err != nil || len(docs) != 1 {
			t.Errorf("FindByName(%q) = %d, %v", name, len(docs), err)
		}
	}
}

func TestImport_TitleFillsEmptyOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	batch := f.files(t, "7 في 5-5-2025 ص.jpg")

	if _, err := f.reconciler.Import(ctx, batch, imports.Options{}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.reconciler.Import(ctx, batch, imports.Options{Titles: map[string]string{"7": "first"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.reconciler.Import(ctx, batch, imports.Options{Titles: map[string]string{"7": "second"}}); err != nil {
		t.Fatal(err)
	}

	docs, _ := f.docs.FindByNumberAndDate(ctx, "7", "05-05-2025")
	if len(docs) != 1 || docs[0].Title != "first" {
		t.Errorf("documents = %+v, want one titled first", docs)
	}
}

func TestImport_DepartmentVariantsMerge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	batch := f.files(t, "3 في 1-2-2025 ص.jpg", "3 في 1-2-2025 و_0001.jpg")

	result, err := f.reconciler.Import(ctx, batch, imports.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Documents != 1 || result.Imported != 2 {
		t.Errorf("result = %s", result.Summary())
	}

	docs, _ := f.docs.FindByNumberAndDate(ctx, "3", "01-02-2025")
	if len(docs) != 1 || docs[0].IssuingDept != "Security Personnel Division — Ana" {
		t.Errorf("documents = %+v", docs)
	}
}

func TestImport_Cancelled(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := f.files(t, "1 في 1-1-2025 ص.jpg")
	result, err := f.reconciler.Import(ctx, batch, imports.Options{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if !result.Cancelled || result.Imported != 0 {
		t.Errorf("result = %+v", result)
	}
}

// staleImages reports a page number that is already taken.
type staleImages struct {
	images.System
	page int
}

func (s staleImages) NextPageNumber(context.Context, uuid.UUID) (int, error) {
	return s.page, nil
}

func TestImport_PageCollisionKeepsStoredFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.reconciler.Import(ctx, f.files(t, "4 في 1-1-2025 ص.jpg"), imports.Options{}); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	stale := imports.New(f.docs, staleImages{System: f.imgs, page: 1}, f.store, nil, archivetest.Logger())
	result, err := stale.Import(ctx, f.files(t, "4 في 1-1-2025 ص_0001.jpg"), imports.Options{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Imported != 0 || result.Failed != 1 {
		t.Fatalf("collision run = %s", result.Summary())
	}
	if !strings.Contains(result.Items[0].Error, storage.ErrExists.Error()) {
		t.Errorf("failed item error = %q, want %q", result.Items[0].Error, storage.ErrExists)
	}

	docs, _ := f.docs.FindByNumberAndDate(ctx, "4", "01-01-2025")
	pages, err := f.imgs.ListByDocument(ctx, docs[0].ID)
	if err != nil || len(pages) != 1 {
		t.Fatalf("pages = %d, %v; want 1", len(pages), err)
	}
	if _, _, err := f.imgs.Data(ctx, pages[0].ID); err != nil {
		t.Errorf("page 1 file lost after collision: %v", err)
	}
}

// cancelAfter cancels the batch once n pages have been recorded.
type cancelAfter struct {
	images.System
	n      int
	cancel context.CancelFunc
}

func (c *cancelAfter) Insert(ctx context.Context, cmd images.InsertCommand) (*images.Image, error) {
	img, err := c.System.Insert(ctx, cmd)
	if err == nil {
		if c.n--; c.n == 0 {
			c.cancel()
		}
	}
	return img, err
}

// countingCopier counts the files copied into storage.
type countingCopier struct {
	storage.System
	copies int
}

func (c *countingCopier) Import(ctx context.Context, key, src string) (int64, error) {
	c.copies++
	return c.System.Import(ctx, key, src)
}

func TestImport_CancelledMidBatch(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	copier := &countingCopier{System: f.store}
	imgs := &cancelAfter{System: f.imgs, n: 2, cancel: cancel}
	r := imports.New(f.docs, imgs, copier, nil, archivetest.Logger())

	batch := f.files(t,
		"8 في 1-1-2025 ص.jpg",
		"8 في 1-1-2025 ص_0001.jpg",
		"8 في 1-1-2025 ص_0002.jpg",
		"9 في 1-1-2025 ص.jpg",
	)

	result, err := r.Import(ctx, batch, imports.Options{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if !result.Cancelled || result.Imported != 2 || result.Failed != 0 {
		t.Fatalf("result = %+v", result)
	}
	if want := "imported 2 of 4 before cancellation"; result.Summary() != want {
		t.Errorf("Summary() = %q, want %q", result.Summary(), want)
	}
	if copier.copies != 2 {
		t.Errorf("copies = %d, want 2", copier.copies)
	}

	bg := context.Background()
	docs, _ := f.docs.FindByNumberAndDate(bg, "8", "01-01-2025")
	if len(docs) != 1 {
		t.Fatalf("documents for 8 = %d, want 1", len(docs))
	}
	pages, err := f.imgs.ListByDocument(bg, docs[0].ID)
	if err != nil || len(pages) != 2 {
		t.Fatalf("pages = %d, %v; want 2", len(pages), err)
	}
	for _, p := range pages {
		if _, _, err := f.imgs.Data(bg, p.ID); err != nil {
			t.Errorf("page %d file: %v", p.PageNumber, err)
		}
	}

	if later, _ := f.docs.FindByNumberAndDate(bg, "9", "01-01-2025"); len(later) != 0 {
		t.Errorf("document 9 created after cancellation")
	}
}

func TestImport_ArabicIndicNumbersJoinDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	batch := f.files(t, "65 في 23-3-2025 ص.jpg", "٦٥ في ٢٣-٣-٢٠٢٥ ص_٠٠٠١.jpg")
	result, err := f.reconciler.Import(ctx, batch, imports.Options{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Documents != 1 || result.Imported != 2 {
		t.Errorf("result = %s", result.Summary())
	}

	again, err := f.reconciler.Import(ctx, f.files(t, "٦٥ في ٢٣-٣-٢٠٢٥ ص_٠٠٠٢.jpg"), imports.Options{})
	if err != nil || again.Created != 0 || again.Reused != 1 {
		t.Errorf("second run = %+v, %v", again, err)
	}
}

func TestImport_NoFiles(t *testing.T) {
	f := newFixture(t)

	if _, err := f.reconciler.Import(context.Background(), nil, imports.Options{}); !errors.Is(err, imports.ErrNoFiles) {
		t.Errorf("Import(nil) error = %v, want ErrNoFiles", err)
	}
}
