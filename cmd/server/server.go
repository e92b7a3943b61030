package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zucenko/checkers/config"
	"github.com/zucenko/checkers/server"
	"github.com/zucenko/checkers/sim"
)

type Server struct {
	GameServer *server.GameServer
	http       *http.Server
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:          "checkers-server",
		Short:        "Runs a checker simulation and streams it to websocket spectators",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFlags(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			log.SetLevel(cfg.LogLevel)
			return run(cfg)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file (yaml, json or toml)")
	cmd.Flags().Int("size", 5, "board size for generated boards")
	cmd.Flags().String("board", "", "board file to start with")
	cmd.Flags().String("port", "8080", "listen port, PORT env wins")
	cmd.Flags().String("log-level", "info", "logrus level")
	return cmd
}

func run(cfg *config.Config) error {
	entry := log.WithField("component", "server")
	s := sim.New(cfg.Settings(), nil, rand.New(rand.NewSource(time.Now().UnixNano())), entry)
	if cfg.BoardFile != "" {
		board, err := server.LoadBoard(cfg.BoardFile, cfg.Settings().Layout)
		if err != nil {
			return err
		}
		s.SetBoard(board)
	} else if err := s.NewBoard(cfg.BoardSize); err != nil {
		return err
	}
	if err := s.NewSimulation(); err != nil {
		return err
	}

	srv := Server{GameServer: server.NewGameServer(s, cfg.FrameInterval, entry)}
	srv.http = &http.Server{Addr: ":" + cfg.Port, Handler: srv.GameServer.Router()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go srv.GameServer.Loop(ctx)
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.http.Shutdown(shutdown); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.Infof("listening on port %s", cfg.Port)
	if err := srv.http.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
