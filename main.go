// Command scrabble-server starts the multiplayer word game server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server against the same game service
//
// Configuration comes from the environment (plus an optional .env file);
// flags override host/port, the dictionaries directory, debug logging, and
// optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"golang.ngrok.com/ngrok"
	ngrokconfig "golang.ngrok.com/ngrok/config"

	"github.com/cuvinte/scrabble-server/api"
	"github.com/cuvinte/scrabble-server/game/config"
	"github.com/cuvinte/scrabble-server/game/dictionary"
	"github.com/cuvinte/scrabble-server/game/service"
	"github.com/cuvinte/scrabble-server/storage"
	"github.com/cuvinte/scrabble-server/storage/memory"
	"github.com/cuvinte/scrabble-server/storage/redis"
	"github.com/cuvinte/scrabble-server/storage/sqlite"
	"github.com/cuvinte/scrabble-server/transport/mcp"
	"github.com/cuvinte/scrabble-server/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Word Game Server"
)

var (
	host         = flag.String("host", "", "HTTP server host (overrides HOST)")
	port         = flag.String("port", "", "HTTP server port (overrides PORT)")
	dictDir      = flag.String("dictionaries", "", "Directory with word lists (overrides DICTIONARIES_DIR)")
	driver       = flag.String("storage", "", "Storage driver: memory, sqlite, or redis (overrides STORAGE_DRIVER)")
	debug        = flag.Bool("debug", false, "Enable debug logging")
	version      = flag.Bool("version", false, "Show version information")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server           Run HTTP server with API, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  mcp              Run MCP stdio server\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                       # Run HTTP server on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090            # Run HTTP server on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -storage sqlite       # Persist sessions to SQLite\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s mcp                   # Run MCP stdio server\n", os.Args[0])
	}
}

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Flags win over the environment.
	if *host != "" {
		cfg.Host = *host
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *dictDir != "" {
		cfg.DictionariesDir = *dictDir
	}
	if *driver != "" {
		cfg.StorageDriver = *driver
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
			os.Exit(1)
		}
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	if *ngrokEnabled {
		cfg.NgrokEnabled = true
	}

	log := newLogger(cfg.LogLevel)

	mode := "server"
	if args := flag.Args(); len(args) > 0 {
		mode = args[0]
	}

	log.Info().
		Str("version", Version).
		Str("mode", mode).
		Str("storage", cfg.StorageDriver).
		Msg("starting")

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}
	defer store.Close()

	dicts, err := dictionary.NewManager(cfg.DictionariesDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DictionariesDir).Msg("failed to load dictionaries")
	}
	log.Info().Int("dictionaries", dicts.Count()).Msg("dictionaries loaded")

	gameService := service.NewGameService(store, dicts, log, cfg.UpdateRetries)

	switch mode {
	case "mcp", "stdio-mcp":
		runStdioMCP(gameService, log)

	case "server", "http":
		runHTTPServer(cfg, gameService, log)

	default:
		log.Fatal().Str("mode", mode).Msg("unknown mode, use 'server' (default) or 'mcp'")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// openStore selects the session repository from configuration.
func openStore(cfg *config.Config) (storage.Repository, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath)
	case config.DriverRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return redis.NewStore(ctx, cfg.RedisURL)
	default:
		return memory.New(), nil
	}
}

// runHTTPServer starts the HTTP server with the REST API, the WebSocket hub,
// and an /mcp endpoint speaking MCP over HTTP. If ngrok is enabled it also
// provisions a public tunnel serving the same router.
func runHTTPServer(cfg *config.Config, gameService service.GameService, log zerolog.Logger) {
	hub := websocket.NewHub(log)
	go hub.Run()

	apiServer := api.NewServer(gameService, hub, log)
	mcpServer := mcp.NewServer(gameService)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.GetMCPServer().HandleMessage(r.Context(), body)

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	})

	addr := cfg.Addr()
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().Str("addr", addr).Msg("http server listening")
		log.Info().Msgf("REST API:     http://%s/api", addr)
		log.Info().Msgf("WebSocket:    ws://%s/ws?session=<session_id>", addr)
		log.Info().Msgf("MCP endpoint: http://%s/mcp", addr)
		log.Info().Msgf("Metrics:      http://%s/metrics", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	if cfg.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if cfg.NgrokAuthToken == "" {
				log.Warn().Msg("ngrok enabled but NGROK_AUTHTOKEN is not set")
				return
			}

			tun, err := ngrok.Listen(ctx,
				ngrokconfig.HTTPEndpoint(),
				ngrok.WithAuthtoken(cfg.NgrokAuthToken),
			)
			if err != nil {
				log.Error().Err(err).Msg("failed to start ngrok tunnel")
				return
			}
			defer tun.Close()

			log.Info().Str("url", tun.URL()).Msg("ngrok tunnel established")

			if err := http.Serve(tun, mainRouter); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("ngrok server error")
			}
		}()
	}

	sig := <-stop
	log.Info().Str("signal", sig.String()).Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	wg.Wait()
	log.Info().Msg("server stopped")
}

// runStdioMCP serves the MCP tools over stdio until the client disconnects.
func runStdioMCP(gameService service.GameService, log zerolog.Logger) {
	srv := mcp.NewServer(gameService)

	log.Info().Msg("mcp stdio server ready")
	if err := mcpserver.ServeStdio(srv.GetMCPServer()); err != nil {
		log.Fatal().Err(err).Msg("mcp stdio server error")
	}
}
