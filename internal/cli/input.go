// Package cli handles cmd line input for querying the catalog, useful for
// testing search ranking and recommendations without a client attached.
package cli

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ShadyRoll/bookserve/internal/utils"
	"github.com/ShadyRoll/bookserve/pkg/catalog"
	"github.com/ShadyRoll/bookserve/pkg/recommend"
	"github.com/ShadyRoll/bookserve/pkg/search"
)

// InputHandler reads queries from stdin and prints ranked results.
// The mode prefix picks the operation: plain input runs a full-text search,
// "/t", "/a" and "/s" switch to title, author and suggest lookups,
// "/rec" prints recommendations for the active user, "/user N" switches it.
type InputHandler struct {
	engine      *search.Engine
	recommender *recommend.Recommender
	index       *search.Index
	limit       int
	user        catalog.UserID
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(engine *search.Engine, rec *recommend.Recommender, index *search.Index, limit int, user catalog.UserID) *InputHandler {
	return &InputHandler{
		engine:      engine,
		recommender: rec,
		index:       index,
		limit:       limit,
		user:        user,
	}
}

// Start begins the interface loop. It terminates when stdin closes.
func (h *InputHandler) Start() error {
	log.Print("bookserve CLI")
	log.Print("type a query and press Enter (/t /a /s /rec /user N, Ctrl+C to exit):")
	reader := bufio.NewReader(os.Stdin)

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) handleInput(line string) {
	op, arg := splitCommand(line)

	var (
		books []catalog.Book
		err   error
	)
	switch op {
	case "user":
		id, convErr := strconv.ParseInt(arg, 10, 64)
		if convErr != nil {
			log.Errorf("Bad user id: %s", arg)
			return
		}
		h.user = catalog.UserID(id)
		log.Infof("Active user is now %d", id)
		return
	case "rec":
		books, err = h.recommender.Recommend(h.user, 0, h.limit)
	case "t":
		books, err = h.engine.SearchByTitle(arg, 0, h.limit)
	case "a":
		books, err = h.engine.SearchByAuthor(arg, 0, h.limit)
	case "s":
		books = h.index.Suggest(arg, h.limit)
	default:
		if utils.IsBlank(line) {
			return
		}
		books, err = h.engine.SearchByText(line, 0, h.limit)
	}

	if err != nil {
		log.Errorf("Query failed: %v", err)
		return
	}
	if len(books) == 0 {
		log.Infof("No results")
		return
	}
	printBooks(books)
}

// splitCommand parses "/t query" style input into op and argument.
func splitCommand(line string) (op, arg string) {
	if !strings.HasPrefix(line, "/") {
		return "", line
	}
	parts := strings.SplitN(line[1:], " ", 2)
	op = parts[0]
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return op, arg
}
