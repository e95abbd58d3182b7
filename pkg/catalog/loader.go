package catalog

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// CatalogFile is the on-disk snapshot format: the full book list plus the
// wishlist IDs per user, msgpack encoded.
type CatalogFile struct {
	Books     []Book              `msgpack:"books"`
	Wishlists map[UserID][]BookID `msgpack:"wishlists,omitempty"`
}

// LoadFile reads a msgpack catalog snapshot and builds a MemoryStore from it.
func LoadFile(path string) (*MemoryStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	var file CatalogFile
	dec := msgpack.NewDecoder(bufio.NewReader(f))
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding catalog file %s: %w", path, err)
	}

	store := NewMemoryStore(file.Books)
	for user, ids := range file.Wishlists {
		store.SetWishlist(user, ids)
	}
	log.Debugf("Loaded %d books and %d wishlists from %s",
		len(file.Books), len(file.Wishlists), path)
	return store, nil
}

// WriteFile writes a catalog snapshot next to the format LoadFile reads.
func WriteFile(path string, file CatalogFile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating catalog file: %w", err)
	}

	w := bufio.NewWriter(f)
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(&file); err != nil {
		f.Close()
		return fmt.Errorf("encoding catalog file: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing catalog file: %w", err)
	}
	// A deferred close would swallow late write errors on the snapshot.
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing catalog file: %w", err)
	}
	return nil
}
