// Package recommend generates per-user book recommendations from the
// genres and authors found in the user's wishlist, with a deterministic
// day-keyed shuffle and a rating-ordered fallback when the wishlist yields
// too few candidates.
package recommend

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ShadyRoll/bookserve/pkg/catalog"
	"github.com/ShadyRoll/bookserve/pkg/search"
)

// ErrUnauthenticated rejects recommendation requests without a resolved
// user identity, before any catalog access.
var ErrUnauthenticated = errors.New("unauthenticated")

const (
	// minPoolSize is the floor below which the rating fallback kicks in.
	minPoolSize = 30
	// fallbackBatchSize is how many rating-ordered books each fallback
	// round appends before deduplicating again.
	fallbackBatchSize = 30
)

// Signal is the preference signal derived from a wishlist: the distinct
// genres and authors of the wished-for books, in wishlist order. It is
// recomputed on every request and never stored.
type Signal struct {
	Genres  []catalog.GenreID
	Authors []string
}

// SignalFrom extracts the preference signal from a wishlist.
func SignalFrom(wishlist []catalog.Book) Signal {
	var sig Signal
	seenGenre := make(map[catalog.GenreID]bool)
	seenAuthor := make(map[string]bool)
	for _, b := range wishlist {
		for _, g := range b.Genres {
			if !seenGenre[g] {
				seenGenre[g] = true
				sig.Genres = append(sig.Genres, g)
			}
		}
		if !seenAuthor[b.Author] {
			seenAuthor[b.Author] = true
			sig.Authors = append(sig.Authors, b.Author)
		}
	}
	return sig
}

// Recommender produces recommendation pages for users.
type Recommender struct {
	store  catalog.Store
	engine *search.Engine
	cache  Cache
	now    func() time.Time
}

// Option customizes a Recommender.
type Option func(*Recommender)

// WithCache replaces the default in-memory cache.
func WithCache(c Cache) Option {
	return func(r *Recommender) { r.cache = c }
}

// WithClock replaces the wall clock used for the daily shuffle seed.
func WithClock(now func() time.Time) Option {
	return func(r *Recommender) { r.now = now }
}

// New returns a Recommender over the store, reusing engine for the
// rating-ordered fallback.
func New(store catalog.Store, engine *search.Engine, opts ...Option) *Recommender {
	r := &Recommender{
		store:  store,
		engine: engine,
		cache:  NewMemoryCache(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Recommend returns the page [skip, skip+limit) of the user's
// recommendation sequence. First-page requests (skip == 0) consult and
// populate the per-user cache; any other page recomputes from the current
// catalog and wishlist. An empty catalog yields an empty page, not an
// error.
func (r *Recommender) Recommend(user catalog.UserID, skip, limit int) ([]catalog.Book, error) {
	if user == 0 {
		return nil, fmt.Errorf("%w: recommendations need a resolved user", ErrUnauthenticated)
	}
	if skip < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: negative skip/limit (%d, %d)", search.ErrInvalidArgument, skip, limit)
	}

	if skip == 0 {
		if seq, ok := r.cache.Get(user); ok {
			return search.Paginate(seq, skip, limit), nil
		}
	}

	seq, err := r.generate(user, skip, limit)
	if err != nil {
		return nil, err
	}
	if skip == 0 {
		r.cache.Put(user, seq)
	}
	return search.Paginate(seq, skip, limit), nil
}

// Invalidate drops the user's cached sequence.
func (r *Recommender) Invalidate(user catalog.UserID) {
	r.cache.Invalidate(user)
}

func (r *Recommender) generate(user catalog.UserID, skip, limit int) ([]catalog.Book, error) {
	sig := SignalFrom(r.store.Wishlist(user))

	// Genre candidates first, then author matches in catalog order.
	// Duplicates are fine here; the post-shuffle dedupe keeps the first
	// occurrence of each ID.
	var pool []catalog.Book
	for _, g := range sig.Genres {
		pool = append(pool, r.store.FindByGenres([]catalog.GenreID{g})...)
	}
	wishedAuthors := make(map[string]bool, len(sig.Authors))
	for _, a := range sig.Authors {
		wishedAuthors[a] = true
	}
	for _, b := range r.store.All() {
		if wishedAuthors[b.Author] {
			pool = append(pool, b)
		}
	}

	Shuffle(pool, DaySeed(r.now()))
	pool = dedupe(pool)

	if len(pool) < minPoolSize {
		rated, err := r.engine.Browse(search.SortRating, false, 0, math.MaxInt)
		if err != nil {
			return nil, err
		}
		for i := 0; i < len(rated); i += fallbackBatchSize {
			end := i + fallbackBatchSize
			if end > len(rated) {
				end = len(rated)
			}
			pool = append(pool, rated[i:end]...)
			pool = dedupe(pool)
			if len(pool) >= limit+skip {
				break
			}
		}
	}
	return pool, nil
}

// dedupe removes repeated IDs, keeping the first occurrence.
func dedupe(books []catalog.Book) []catalog.Book {
	seen := make(map[catalog.BookID]bool, len(books))
	out := books[:0]
	for _, b := range books {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	return out
}
