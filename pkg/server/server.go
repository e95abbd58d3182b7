package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ShadyRoll/bookserve/internal/utils"
	"github.com/ShadyRoll/bookserve/pkg/catalog"
	"github.com/ShadyRoll/bookserve/pkg/config"
	"github.com/ShadyRoll/bookserve/pkg/recommend"
	"github.com/ShadyRoll/bookserve/pkg/search"
)

// Server handles the IPC for catalog search and recommendations.
type Server struct {
	engine      *search.Engine
	recommender *recommend.Recommender
	index       *search.Index
	cfg         *config.Config
	dec         *msgpack.Decoder
	enc         *msgpack.Encoder
}

// NewServer creates a server over stdin/stdout.
func NewServer(engine *search.Engine, rec *recommend.Recommender, index *search.Index, cfg *config.Config) *Server {
	return NewServerWithIO(engine, rec, index, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over an arbitrary stream pair.
func NewServerWithIO(engine *search.Engine, rec *recommend.Recommender, index *search.Index, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine:      engine,
		recommender: rec,
		index:       index,
		cfg:         cfg,
		dec:         msgpack.NewDecoder(r),
		enc:         msgpack.NewEncoder(w),
	}
}

// Start begins the request loop. It returns nil on EOF.
func (s *Server) Start() error {
	log.Debug("Starting server.")
	s.send(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	switch req.Op {
	case "title", "author", "text", "browse", "suggest", "recommend":
		s.handleQuery(req)
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown op: %s", req.Op), 400)
	}
}

func (s *Server) handleQuery(req Request) {
	limit := utils.ClampLimit(req.Limit, s.cfg.CLI.DefaultLimit, s.cfg.Server.MaxLimit)

	if req.Op != "recommend" && req.Op != "browse" {
		if utils.IsBlank(req.Query) {
			s.sendError(req.ID, "Missing 'q' parameter", 400)
			return
		}
		if !utils.QueryLenOK(req.Query, s.cfg.Server.MinQueryLen, s.cfg.Server.MaxQueryLen) {
			s.sendError(req.ID, fmt.Sprintf("Query length out of bounds (%d-%d)",
				s.cfg.Server.MinQueryLen, s.cfg.Server.MaxQueryLen), 400)
			return
		}
	}

	start := time.Now()
	var (
		books []catalog.Book
		err   error
	)
	switch req.Op {
	case "title":
		books, err = s.engine.SearchByTitle(req.Query, req.Skip, limit)
	case "author":
		books, err = s.engine.SearchByAuthor(req.Query, req.Skip, limit)
	case "text":
		books, err = s.engine.SearchByText(req.Query, req.Skip, limit)
	case "browse":
		sortKey := search.SortKey(req.Sort)
		if req.Sort == "" {
			sortKey = search.SortNone
		}
		books, err = s.engine.Browse(sortKey, req.Asc, req.Skip, limit)
	case "suggest":
		books = s.index.Suggest(req.Query, limit)
	case "recommend":
		books, err = s.recommender.Recommend(catalog.UserID(req.User), req.Skip, limit)
	}
	elapsed := time.Since(start)

	if err != nil {
		code := 500
		if errors.Is(err, search.ErrInvalidArgument) {
			code = 400
		} else if errors.Is(err, recommend.ErrUnauthenticated) {
			code = 401
		}
		s.sendError(req.ID, err.Error(), code)
		return
	}

	resp := Response{
		ID:        req.ID,
		Books:     toResponseBooks(books),
		Count:     len(books),
		TimeTaken: elapsed.Milliseconds(),
	}
	s.send(resp)
}

func toResponseBooks(books []catalog.Book) []ResponseBook {
	out := make([]ResponseBook, len(books))
	for i, b := range books {
		out[i] = ResponseBook{
			ID:     int64(b.ID),
			Title:  b.Title,
			Author: b.Author,
			Rating: b.Rating,
		}
	}
	return out
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
