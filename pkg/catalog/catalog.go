// Package catalog defines the book records the search and recommendation
// engines operate on, and an in-memory snapshot store that supplies them.
//
// The engines never mutate records: a store hands out the current snapshot
// and whoever owns persistence deals with locking and transactions around
// producing it. Records are compared by ID only; every other field is data.
package catalog

import "time"

// GenreID identifies a genre tag.
type GenreID int64

// UserID identifies a user. Zero means no resolved identity.
type UserID int64

// BookID identifies a book record.
type BookID int64

// Book is a single catalog record.
type Book struct {
	ID     BookID    `msgpack:"id"`
	Title  string    `msgpack:"title"`
	Author string    `msgpack:"author"`
	Rating float64   `msgpack:"rating"`
	Genres []GenreID `msgpack:"genres,omitempty"`
	Added  time.Time `msgpack:"added"`
}

// HasGenres reports whether the book carries every genre in want.
// An empty want matches any book.
func (b Book) HasGenres(want []GenreID) bool {
	for _, g := range want {
		found := false
		for _, have := range b.Genres {
			if have == g {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Store is the catalog surface the engines consume.
type Store interface {
	// All returns the full catalog in its stable catalog order.
	All() []Book

	// FindByGenres returns books whose genre set contains every given
	// genre, in catalog order.
	FindByGenres(genres []GenreID) []Book

	// Wishlist returns the books on a user's wishlist. Unknown users get
	// an empty list.
	Wishlist(user UserID) []Book
}
