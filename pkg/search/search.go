// Package search is the relevance engine over the catalog: it tokenizes a
// free-text query, scores every record with the fuzzy similarity from
// pkg/fuzzy, and returns a sorted, paginated slice. It also carries the
// generic sort-and-paginate path (Browse) that the recommendation fallback
// reuses for rating ordering.
package search

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ShadyRoll/bookserve/pkg/catalog"
	"github.com/ShadyRoll/bookserve/pkg/fuzzy"
)

// ErrInvalidArgument rejects blank queries and negative skip/limit values
// before any scoring starts.
var ErrInvalidArgument = errors.New("invalid argument")

// Engine runs relevance searches against a catalog store.
type Engine struct {
	store catalog.Store
}

// New returns an Engine over the given store.
func New(store catalog.Store) *Engine {
	return &Engine{store: store}
}

// Tokenize lowercases a query and splits it on whitespace.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// scoreCache memoizes relevance scores by the literal list of field values
// being compared. It lives for exactly one search call: scores are only
// valid against the token list of that call and must never leak across
// queries. Duplicate records (same author/title) hit the cache instead of
// rescoring.
type scoreCache map[string]int

func cacheKey(fields []string) string {
	return strings.Join(fields, "\x1f")
}

// score sums, over every query token, the best word similarity per field.
// A token that matches nothing contributes zero for that field, never a
// negative value.
func (c scoreCache) score(fields, tokens []string) int {
	key := cacheKey(fields)
	if s, ok := c[key]; ok {
		return s
	}
	score := 0
	for _, token := range tokens {
		for _, field := range fields {
			best := 0
			for _, word := range strings.Fields(field) {
				if s := fuzzy.Similarity(word, token); s > best {
					best = s
				}
			}
			score += best
		}
	}
	c[key] = score
	return score
}

// SearchByTitle ranks the catalog against the query by title only.
func (e *Engine) SearchByTitle(query string, skip, limit int) ([]catalog.Book, error) {
	return e.search(query, skip, limit, func(b catalog.Book) []string {
		return []string{b.Title}
	})
}

// SearchByAuthor ranks the catalog against the query by author only.
func (e *Engine) SearchByAuthor(query string, skip, limit int) ([]catalog.Book, error) {
	return e.search(query, skip, limit, func(b catalog.Book) []string {
		return []string{b.Author}
	})
}

// SearchByText ranks the catalog against the query by author and title.
func (e *Engine) SearchByText(query string, skip, limit int) ([]catalog.Book, error) {
	return e.search(query, skip, limit, func(b catalog.Book) []string {
		return []string{b.Author, b.Title}
	})
}

func (e *Engine) search(query string, skip, limit int, fields func(catalog.Book) []string) ([]catalog.Book, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: blank search query", ErrInvalidArgument)
	}
	if err := checkSkipAndLimit(skip, limit); err != nil {
		return nil, err
	}

	tokens := Tokenize(query)
	books := e.store.All()

	// One cache per call; dropped when this function returns.
	cache := make(scoreCache)
	sort.SliceStable(books, func(i, j int) bool {
		return cache.score(fields(books[i]), tokens) > cache.score(fields(books[j]), tokens)
	})
	return Paginate(books, skip, limit), nil
}

// SortKey selects the ordering for Browse.
type SortKey string

const (
	SortNone   SortKey = "none"
	SortDate   SortKey = "date"
	SortRating SortKey = "rating"
)

// Browse returns a page of the catalog under the given ordering. SortNone
// keeps catalog order; the ascending flag is ignored for it. Order among
// equal sort keys is unspecified.
func (e *Engine) Browse(key SortKey, ascending bool, skip, limit int) ([]catalog.Book, error) {
	if err := checkSkipAndLimit(skip, limit); err != nil {
		return nil, err
	}

	books := e.store.All()
	var less func(i, j int) bool
	switch key {
	case SortNone:
	case SortDate:
		less = func(i, j int) bool { return books[i].Added.Before(books[j].Added) }
	case SortRating:
		less = func(i, j int) bool { return books[i].Rating < books[j].Rating }
	default:
		return nil, fmt.Errorf("%w: unknown sort key %q (use none, date or rating)", ErrInvalidArgument, key)
	}
	if less != nil {
		if !ascending {
			asc := less
			less = func(i, j int) bool { return asc(j, i) }
		}
		sort.SliceStable(books, less)
	}
	return Paginate(books, skip, limit), nil
}

// Paginate clamps skip/limit against the slice bounds and returns the page.
func Paginate(books []catalog.Book, skip, limit int) []catalog.Book {
	if skip >= len(books) {
		return []catalog.Book{}
	}
	books = books[skip:]
	if limit < len(books) {
		books = books[:limit]
	}
	return books
}

func checkSkipAndLimit(skip, limit int) error {
	if skip < 0 {
		return fmt.Errorf("%w: negative skip %d", ErrInvalidArgument, skip)
	}
	if limit < 0 {
		return fmt.Errorf("%w: negative limit %d", ErrInvalidArgument, limit)
	}
	return nil
}
