package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"trapmouse/communication/client"
	"trapmouse/communication/server"
	"trapmouse/config"
	"trapmouse/game"
	"trapmouse/gamemaster"
	"trapmouse/metrics"
	"trapmouse/player"
)

var rootCmd = &cobra.Command{
	Use:               "trapmouse",
	Short:             "Hex board mouse and trapper game server",
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game server",
	RunE:  runServe,
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Play the trapper against a running server",
	RunE:  runBot,
}

var (
	cfg     config.Config
	loadErr error

	flagRoom       uint32
	flagName       string
	flagDifficulty string
	flagRole       string
)

func init() {
	cfg, loadErr = config.Load()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "TCP address to listen on or dial (env TRAPMOUSE_ADDR)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (env LOG_LEVEL)")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "json or console (env LOG_FORMAT)")

	serveFlags := serveCmd.Flags()
	serveFlags.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "optional HTTP address for /healthz, /rooms and /ws (env TRAPMOUSE_HTTP_ADDR)")
	serveFlags.StringVar(&cfg.RecordsDir, "records-dir", cfg.RecordsDir, "optional directory for game_records.csv (env TRAPMOUSE_RECORDS_DIR)")

	botFlags := botCmd.Flags()
	botFlags.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "get_update period (env TRAPMOUSE_POLL_INTERVAL)")
	botFlags.Uint32Var(&flagRoom, "room", 0, "room id to join; 0 creates a single player room")
	botFlags.StringVar(&flagName, "name", "bot", "player name")
	botFlags.StringVar(&flagRole, "role", "trapper", "mouse or trapper; a created single player room needs trapper")
	botFlags.StringVar(&flagDifficulty, "difficulty", "easy", "AI level for a created single player room")

	rootCmd.AddCommand(serveCmd, botCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("execute command")
	}
}

func setup(cmd *cobra.Command, args []string) error {
	if loadErr != nil {
		return loadErr
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector()
	opts := []gamemaster.Option{gamemaster.WithCollector(collector)}
	if cfg.RecordsDir != "" {
		w, err := metrics.NewWriter(cfg.RecordsDir)
		if err != nil {
			return err
		}
		log.Info().Msgf("Recording finished games to %s", w.Path())
		opts = append(opts, gamemaster.WithRecorder(w))
	}
	gm := gamemaster.New(opts...)
	srv := server.NewServer(gm)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	if cfg.HTTPAddr != "" {
		webLn, err := net.Listen("tcp", cfg.HTTPAddr)
		if err != nil {
			ln.Close()
			return fmt.Errorf("listen http: %w", err)
		}
		go func() {
			if err := srv.ServeWeb(ctx, webLn); err != nil {
				log.Error().Err(err).Msg("HTTP server stopped")
				stop()
			}
		}()
	}

	err = srv.Serve(ctx, ln)

	m := gm.Metrics()
	log.Info().
		Dur("uptime", m.Uptime).
		Int("commands", m.Commands).
		Int("parse_errors", m.ParseErrors).
		Int("rooms_created", m.RoomsCreated).
		Int("rooms_removed", m.RoomsRemoved).
		Int("games_finished", m.GamesFinished).
		Int("ai_moves", m.AIMoves).
		Msg("Server stopped")
	return err
}

func runBot(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.Dial(ctx, cfg.Addr)
	if err != nil {
		return err
	}
	defer c.Close()

	role, err := game.ParseRole(flagRole)
	if err != nil {
		return err
	}
	newBot := player.NewTrapperBot
	if role == game.MousePlayer {
		newBot = player.NewMouseBot
	}

	room := flagRoom
	if room == 0 {
		if role != game.TrapperPlayer {
			return fmt.Errorf("a single player room needs --role trapper")
		}
		level, err := game.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		room, err = player.CreateSingleRoom(c, flagName, level)
		if err != nil {
			return err
		}
	}

	bot := newBot(flagName, room, c, cfg.PollInterval, nil)
	if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
