package catalog

import (
	"path/filepath"
	"testing"
	"time"
)

func sampleBooks() []Book {
	added := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	return []Book{
		{ID: 1, Title: "1984", Author: "George Orwell", Rating: 4.5, Genres: []GenreID{1, 2}, Added: added},
		{ID: 2, Title: "Animal Farm", Author: "George Orwell", Rating: 4.2, Genres: []GenreID{1}, Added: added},
		{ID: 3, Title: "Solaris", Author: "Stanislaw Lem", Rating: 4.8, Genres: []GenreID{2, 3}, Added: added},
	}
}

func TestHasGenres(t *testing.T) {
	b := Book{ID: 1, Genres: []GenreID{1, 2, 3}}

	testCases := []struct {
		want     []GenreID
		expected bool
		desc     string
	}{
		{nil, true, "empty query matches"},
		{[]GenreID{2}, true, "single genre present"},
		{[]GenreID{1, 3}, true, "all queried genres present"},
		{[]GenreID{1, 4}, false, "one queried genre missing"},
		{[]GenreID{4}, false, "genre absent"},
	}
	for _, tc := range testCases {
		if got := b.HasGenres(tc.want); got != tc.expected {
			t.Errorf("%s: HasGenres(%v) = %v, want %v", tc.desc, tc.want, got, tc.expected)
		}
	}
}

func TestMemoryStoreFindByGenres(t *testing.T) {
	store := NewMemoryStore(sampleBooks())

	got := store.FindByGenres([]GenreID{1})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("FindByGenres(1) = %v, want books 1 and 2 in catalog order", got)
	}

	// Superset semantics: a book must carry every queried genre.
	got = store.FindByGenres([]GenreID{1, 2})
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("FindByGenres(1,2) = %v, want only book 1", got)
	}
}

func TestMemoryStoreWishlist(t *testing.T) {
	store := NewMemoryStore(sampleBooks())

	if got := store.Wishlist(42); len(got) != 0 {
		t.Errorf("unknown user wishlist = %v, want empty", got)
	}

	// Dangling IDs are skipped.
	store.SetWishlist(42, []BookID{3, 999, 1})
	got := store.Wishlist(42)
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 {
		t.Errorf("Wishlist(42) = %v, want books 3 and 1 in wishlist order", got)
	}
}

func TestMemoryStoreAllReturnsCopy(t *testing.T) {
	store := NewMemoryStore(sampleBooks())

	a := store.All()
	a[0], a[1] = a[1], a[0]
	b := store.All()
	if b[0].ID != 1 {
		t.Error("All() must hand out an independent copy of the catalog order")
	}
}

func TestCatalogFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.bin")
	file := CatalogFile{
		Books:     sampleBooks(),
		Wishlists: map[UserID][]BookID{7: {1, 3}},
	}
	if err := WriteFile(path, file); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	store, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if store.Len() != 3 {
		t.Fatalf("loaded %d books, want 3", store.Len())
	}
	wl := store.Wishlist(7)
	if len(wl) != 2 || wl[0].ID != 1 || wl[1].ID != 3 {
		t.Errorf("loaded wishlist = %v, want books 1 and 3", wl)
	}
	if got := store.All()[2]; got.Title != "Solaris" || !got.Added.Equal(sampleBooks()[2].Added) {
		t.Errorf("book 3 did not round-trip: %+v", got)
	}
}

func TestWriteFileBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "catalog.bin")
	if err := WriteFile(path, CatalogFile{Books: sampleBooks()}); err == nil {
		t.Error("WriteFile into a nonexistent directory must fail")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.bin")); err == nil {
		t.Error("LoadFile on a missing file must fail")
	}
}
