package search

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/ShadyRoll/bookserve/pkg/catalog"
)

// Index is a Patricia-trie prefix index over the words of every title and
// author, for completing a search term as the user types. It indexes a
// snapshot taken at build time; rebuild it when the catalog changes.
type Index struct {
	trie  *patricia.Trie
	books []catalog.Book
}

// BuildIndex indexes the store's current snapshot.
func BuildIndex(store catalog.Store) *Index {
	ix := &Index{
		trie:  patricia.NewTrie(),
		books: store.All(),
	}
	byWord := make(map[string][]int)
	for i, b := range ix.books {
		for _, word := range indexWords(b) {
			byWord[word] = append(byWord[word], i)
		}
	}
	for word, bookIdxs := range byWord {
		ix.trie.Insert(patricia.Prefix(word), bookIdxs)
	}
	return ix
}

func indexWords(b catalog.Book) []string {
	words := strings.Fields(strings.ToLower(b.Title))
	return append(words, strings.Fields(strings.ToLower(b.Author))...)
}

// Suggest returns up to limit books whose title or author contains a word
// starting with prefix, best rated first. The prefix is matched lowercase.
func (ix *Index) Suggest(prefix string, limit int) []catalog.Book {
	lowerPrefix := strings.ToLower(strings.TrimSpace(prefix))
	if lowerPrefix == "" || limit <= 0 {
		return nil
	}

	seen := make(map[catalog.BookID]bool)
	var hits []catalog.Book
	err := ix.trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		for _, idx := range item.([]int) {
			b := ix.books[idx]
			if seen[b.ID] {
				continue
			}
			seen[b.ID] = true
			hits = append(hits, b)
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting index subtree: %v", err)
		return nil
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Rating > hits[j].Rating
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// Size returns the number of indexed books.
func (ix *Index) Size() int {
	return len(ix.books)
}
