package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShadyRoll/bookserve/pkg/catalog"
)

func testStore() *catalog.MemoryStore {
	added := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	return catalog.NewMemoryStore([]catalog.Book{
		{ID: 1, Title: "1984", Author: "George Orwell", Rating: 4.5, Added: added},
		{ID: 2, Title: "Animal Farm", Author: "George Orwell", Rating: 4.2, Added: added.AddDate(0, 0, 1)},
		{ID: 3, Title: "Solaris", Author: "Stanislaw Lem", Rating: 4.8, Added: added.AddDate(0, 0, 2)},
		{ID: 4, Title: "Brave New World", Author: "Aldous Huxley", Rating: 4.0, Added: added.AddDate(0, 0, 3)},
		{ID: 5, Title: "Fahrenheit 451", Author: "Ray Bradbury", Rating: 3.9, Added: added.AddDate(0, 0, 4)},
	})
}

func ids(books []catalog.Book) []catalog.BookID {
	out := make([]catalog.BookID, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestSearchRejectsInvalidArguments(t *testing.T) {
	e := New(testStore())

	searches := map[string]func(string, int, int) ([]catalog.Book, error){
		"title":  e.SearchByTitle,
		"author": e.SearchByAuthor,
		"text":   e.SearchByText,
	}
	for name, fn := range searches {
		t.Run(name, func(t *testing.T) {
			_, err := fn("", 0, 10)
			assert.ErrorIs(t, err, ErrInvalidArgument, "empty query")

			_, err = fn("   \t", 0, 10)
			assert.ErrorIs(t, err, ErrInvalidArgument, "whitespace query")

			_, err = fn("orwell", -1, 10)
			assert.ErrorIs(t, err, ErrInvalidArgument, "negative skip")

			_, err = fn("orwell", 0, -1)
			assert.ErrorIs(t, err, ErrInvalidArgument, "negative limit")
		})
	}
}

// One-edit fuzzy match: "orwel" must surface both Orwell books, best first,
// ties keeping catalog order.
func TestSearchByAuthorFuzzyMatch(t *testing.T) {
	e := New(testStore())

	books, err := e.SearchByAuthor("orwel", 0, 10)
	require.NoError(t, err)
	require.Len(t, books, 5)
	assert.Equal(t, []catalog.BookID{1, 2}, ids(books[:2]))
}

func TestSearchByTitleCaseInsensitiveOnCatalogSide(t *testing.T) {
	e := New(testStore())

	lower, err := e.SearchByTitle("solaris", 0, 10)
	require.NoError(t, err)
	upper, err := e.SearchByTitle("Solaris", 0, 10)
	require.NoError(t, err)

	assert.Equal(t, catalog.BookID(3), lower[0].ID)
	assert.Equal(t, ids(lower), ids(upper), "query casing must not change ranking")
}

func TestSearchByTextCombinesFields(t *testing.T) {
	e := New(testStore())

	books, err := e.SearchByText("orwell 1984", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []catalog.BookID{1, 2}, ids(books[:2]),
		"title and author contributions must stack")
}

// With a stable sort, two small pages concatenate to one large page.
func TestSearchPaginationIsStable(t *testing.T) {
	e := New(testStore())

	full, err := e.SearchByText("orwell 1984", 0, 4)
	require.NoError(t, err)
	p1, err := e.SearchByText("orwell 1984", 0, 2)
	require.NoError(t, err)
	p2, err := e.SearchByText("orwell 1984", 2, 2)
	require.NoError(t, err)

	assert.Equal(t, ids(full), append(ids(p1), ids(p2)...))
}

func TestBrowse(t *testing.T) {
	e := New(testStore())

	t.Run("rating descending", func(t *testing.T) {
		books, err := e.Browse(SortRating, false, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, []catalog.BookID{3, 1, 2, 4, 5}, ids(books))
	})

	t.Run("date ascending", func(t *testing.T) {
		books, err := e.Browse(SortDate, true, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, []catalog.BookID{1, 2, 3, 4, 5}, ids(books))
	})

	t.Run("none keeps catalog order", func(t *testing.T) {
		books, err := e.Browse(SortNone, true, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, []catalog.BookID{2, 3}, ids(books))
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := e.Browse(SortKey("popularity"), true, 0, 10)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("negative skip", func(t *testing.T) {
		_, err := e.Browse(SortNone, true, -1, 10)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestPaginateClamps(t *testing.T) {
	books := testStore().All()

	assert.Empty(t, Paginate(books, 99, 10), "skip past the end")
	assert.Len(t, Paginate(books, 3, 10), 2, "limit past the end")
	assert.Len(t, Paginate(books, 0, 0), 0, "zero limit")
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		query    string
		expected []string
	}{
		{"Orwell", []string{"orwell"}},
		{"  Animal   Farm ", []string{"animal", "farm"}},
		{"a B c", []string{"a", "b", "c"}},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Tokenize(tc.query))
	}
}

// Duplicate records share one cache entry within a call.
func TestScoreCacheMemoizes(t *testing.T) {
	cache := make(scoreCache)
	tokens := []string{"orwell"}

	first := cache.score([]string{"George Orwell", "1984"}, tokens)
	require.Len(t, cache, 1)
	second := cache.score([]string{"George Orwell", "1984"}, tokens)
	assert.Equal(t, first, second)
	assert.Len(t, cache, 1)
}

// A token matching nothing contributes zero per field, never negative.
func TestScoreFloorsNegativeSimilarity(t *testing.T) {
	cache := make(scoreCache)
	score := cache.score([]string{"zzzzzzzzzz"}, []string{"a"})
	assert.Equal(t, 0, score)
}
