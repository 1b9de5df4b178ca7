package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/msads/advisor/internal/log"
)

// fakeLoaderStore records added documents.
type fakeLoaderStore struct {
	addErr error
	docs   []Document
}

func (f *fakeLoaderStore) Add(ctx context.Context, doc Document) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.docs = append(f.docs, doc)
	return nil
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoader_LoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "deadlines.txt", "Round 1 deadline: January 5, 2024.")
	writeFile(t, dir, "tuition.txt", "Tuition is $5,967 per course.")
	writeFile(t, dir, "notes.md", "not a corpus file")
	writeFile(t, dir, "empty.txt", "   \n")

	store := &fakeLoaderStore{}
	loader := NewLoader(store, log.NewNop())

	res, err := loader.LoadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadDir() = %v", err)
	}

	if res.FilesAdded != 2 {
		t.Errorf("FilesAdded = %d, want 2", res.FilesAdded)
	}
	if res.FilesSkipped != 2 { // .md and empty.txt
		t.Errorf("FilesSkipped = %d, want 2", res.FilesSkipped)
	}
	if len(store.docs) != 2 {
		t.Fatalf("stored %d docs, want 2", len(store.docs))
	}
	for _, doc := range store.docs {
		if doc.SourceID == "" || doc.ID == "" {
			t.Errorf("doc missing identity: %+v", doc)
		}
	}
}

func TestLoader_LoadDir_StableIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.txt", "content v1")

	store := &fakeLoaderStore{}
	loader := NewLoader(store, log.NewNop())

	if _, err := loader.LoadDir(context.Background(), dir); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "page.txt", "content v2")
	if _, err := loader.LoadDir(context.Background(), dir); err != nil {
		t.Fatal(err)
	}

	// Same filename must map to the same document ID so reloads upsert.
	if store.docs[0].ID != store.docs[1].ID {
		t.Errorf("IDs differ between runs: %q vs %q", store.docs[0].ID, store.docs[1].ID)
	}
}

func TestLoader_LoadDir_MissingDir(t *testing.T) {
	loader := NewLoader(&fakeLoaderStore{}, log.NewNop())

	if _, err := loader.LoadDir(context.Background(), "/does/not/exist"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoader_LoadDir_AllFail(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "some content")

	loader := NewLoader(&fakeLoaderStore{addErr: errors.New("embedder down")}, log.NewNop())

	res, err := loader.LoadDir(context.Background(), dir)
	if err == nil {
		t.Fatal("expected error when every file fails")
	}
	if res.FilesFailed != 1 {
		t.Errorf("FilesFailed = %d, want 1", res.FilesFailed)
	}
}
