package catalog

import "sync"

// MemoryStore keeps the catalog and wishlists in memory. Reads hand out
// fresh slices so callers can sort and trim without racing each other.
type MemoryStore struct {
	mu        sync.RWMutex
	books     []Book
	wishlists map[UserID][]BookID
	byID      map[BookID]int
}

// NewMemoryStore builds a store from a catalog snapshot. Book order is
// preserved and becomes the catalog order every engine sees.
func NewMemoryStore(books []Book) *MemoryStore {
	byID := make(map[BookID]int, len(books))
	for i, b := range books {
		byID[b.ID] = i
	}
	return &MemoryStore{
		books:     books,
		wishlists: make(map[UserID][]BookID),
		byID:      byID,
	}
}

// All returns a copy of the catalog in catalog order.
func (m *MemoryStore) All() []Book {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Book, len(m.books))
	copy(out, m.books)
	return out
}

// FindByGenres returns books carrying every genre in genres, in catalog order.
func (m *MemoryStore) FindByGenres(genres []GenreID) []Book {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Book
	for _, b := range m.books {
		if b.HasGenres(genres) {
			out = append(out, b)
		}
	}
	return out
}

// Wishlist returns the user's wishlist books. IDs that no longer resolve to
// a catalog record are skipped.
func (m *MemoryStore) Wishlist(user UserID) []Book {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.wishlists[user]
	out := make([]Book, 0, len(ids))
	for _, id := range ids {
		if i, ok := m.byID[id]; ok {
			out = append(out, m.books[i])
		}
	}
	return out
}

// SetWishlist replaces a user's wishlist.
func (m *MemoryStore) SetWishlist(user UserID, ids []BookID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wishlists[user] = ids
}

// Add appends a book to the catalog.
func (m *MemoryStore) Add(b Book) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[b.ID] = len(m.books)
	m.books = append(m.books, b)
}

// Len returns the catalog size.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.books)
}
