// Command pokertool is a small dev driver: it loads a game configuration,
// wires an Orchestrator to an in-memory broadcast Sink, serves that game
// over a websocket, and runs hands until the game ends or it is killed.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/ophis/holdem-engine/internal/bot"
	"github.com/ophis/holdem-engine/internal/broadcast"
	"github.com/ophis/holdem-engine/internal/config"
	"github.com/ophis/holdem-engine/internal/orchestrator"
	"github.com/ophis/holdem-engine/internal/table"
	"github.com/ophis/holdem-engine/internal/transport"
)

var CLI struct {
	Config   string `short:"c" long:"config" default:"pokertool.hcl" help:"Path to HCL game configuration file"`
	Addr     string `short:"a" long:"addr" default:":8080" help:"Address to serve the game's websocket on"`
	LogLevel string `short:"l" long:"log-level" default:"info" help:"Log level (debug, info, warn, error)"`
	Seed     int64  `short:"s" long:"seed" help:"Random seed for deck shuffling and bot think-time jitter"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logger := log.New(os.Stderr)
	logger.SetColorProfile(termenv.TrueColor)
	switch CLI.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		ctx.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		ctx.Exit(1)
	}

	seed := CLI.Seed
	if seed == 0 {
		seed = int64(os.Getpid())
	}
	rng := rand.New(rand.NewSource(seed))

	game := table.NewGameState("pokertool", cfg.Variant(), cfg.Game.SmallBlind, cfg.Game.BigBlind)
	game.Seats = cfg.BuildSeats()

	sink := broadcast.NewMemorySink()
	o := orchestrator.New(game, sink, bot.ReferenceDecider{}, rng, quartz.NewReal())

	logger.Info("starting game",
		"addr", CLI.Addr,
		"seats", len(game.Seats),
		"small_blind", game.SmallBlind,
		"big_blind", game.BigBlind)

	runCtx, cancel := context.WithCancel(context.Background())
	go o.Run(runCtx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("player")
		if playerID == "" {
			http.Error(w, "missing player query parameter", http.StatusBadRequest)
			return
		}
		conn, err := transport.Accept(w, r, playerID, sink, o)
		if err != nil {
			logger.Error("websocket upgrade failed", "error", err, "player", playerID)
			return
		}
		logger.Debug("player connected", "player", playerID)
		go conn.WritePump()
		conn.ReadPump()
		logger.Debug("player disconnected", "player", playerID)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	httpServer := &http.Server{Addr: CLI.Addr, Handler: mux}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info("shutting down")
		cancel()
		_ = httpServer.Close()
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "error", err)
		ctx.Exit(1)
	}
}
