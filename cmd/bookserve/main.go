/*
Package main implements the bookserve catalog search server and CLI.

Bookserve ranks a catalog of book records against free-text queries using a
modified Damerau-Levenshtein similarity with a consecutive-run discount, and
generates per-user recommendations from wishlist genres and authors with a
deterministic day-keyed shuffle.

# Usage

Start the msgpack IPC server with default settings:

	bookserve

Use a custom catalog snapshot and enable debug logging:

	bookserve -data /path/to/catalog.bin -d

Run in CLI mode for interactive testing:

	bookserve -c -limit 10

# Configuration

Runtime configuration is a TOML file, created with defaults when missing:

	[server]
	max_limit = 64
	min_query_len = 1
	max_query_len = 120

	[catalog]
	data_path = "data/catalog.bin"

	[recommend]
	cache_enabled = true

# IPC Protocol

The server speaks msgpack over stdin/stdout. Send a search request:

	{"id": "req1", "op": "text", "q": "orwell 1984", "l": 10}

and receive ranked books:

	{"id": "req1", "b": [{"id": 1, "title": "1984", ...}], "c": 1, "t": 2}

See pkg/server for the full message set, including browse, suggest and
recommend ops.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/ShadyRoll/bookserve/internal/cli"
	"github.com/ShadyRoll/bookserve/internal/logger"
	"github.com/ShadyRoll/bookserve/pkg/catalog"
	"github.com/ShadyRoll/bookserve/pkg/config"
	"github.com/ShadyRoll/bookserve/pkg/recommend"
	"github.com/ShadyRoll/bookserve/pkg/search"
	"github.com/ShadyRoll/bookserve/pkg/server"
)

const (
	Version = "1.0.0"
	AppName = "bookserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires the catalog, engines and the chosen front end together.
// It does not implement any query logic itself.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "config.toml", "Path to the TOML config file")
	dataPath := flag.String("data", "", "Path to the catalog snapshot (overrides config)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of results to return in CLI mode")
	user := flag.Int64("user", defaultConfig.CLI.DefaultUser, "Active user id for CLI recommendations")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", AppName, Version)
		return
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetDefault(logger.NewWithConfig(AppName, log.DebugLevel, true, true, log.TextFormatter))
	} else {
		log.SetDefault(logger.New(AppName))
	}

	cfg, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("Loading config: %v", err)
	}
	path := cfg.Catalog.DataPath
	if *dataPath != "" {
		path = *dataPath
	}

	store, err := catalog.LoadFile(path)
	if err != nil {
		log.Fatalf("Loading catalog from %s: %v", path, err)
	}
	log.Infof("Catalog loaded: %d books", store.Len())

	engine := search.New(store)
	index := search.BuildIndex(store)

	var opts []recommend.Option
	if !cfg.Recommend.CacheEnabled {
		opts = append(opts, recommend.WithCache(recommend.NopCache{}))
	}
	recommender := recommend.New(store, engine, opts...)

	if *cliMode {
		handler := cli.NewInputHandler(engine, recommender, index, *limit, catalog.UserID(*user))
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI terminated: %v", err)
		}
		return
	}

	srv := server.NewServer(engine, recommender, index, cfg)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server terminated: %v", err)
	}
}
