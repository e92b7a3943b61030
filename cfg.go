package main

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zucenko/checkers/anim"
	"github.com/zucenko/checkers/config"
	"github.com/zucenko/checkers/model"
	"github.com/zucenko/checkers/sim"
)

func rootCommand() *cobra.Command {
	var configFile string
	var mute bool
	cmd := &cobra.Command{
		Use:          "checkers",
		Short:        "Watch a checker follow the arrows",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFlags(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			log.SetLevel(cfg.LogLevel)
			g, err := NewGame(cfg, !mute)
			if err != nil {
				return err
			}
			return ebiten.Run(g.update, screenWidth, screenHeight, 1, "Checkers")
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file (yaml, json or toml)")
	cmd.Flags().Int("size", 5, "board size, 3 to 9 switch it at runtime")
	cmd.Flags().String("board", "", "board file drawn with ^ > v <")
	cmd.Flags().String("log-level", "info", "logrus level")
	cmd.Flags().BoolVar(&mute, "mute", false, "no audio cues")
	return cmd
}

// Load reads a board file the ebitenutil way so it also works on mobile and
// in the browser.
func Load(path string, layout model.Layout) (*model.Board, error) {
	file, err := ebitenutil.OpenFile(path)
	if err != nil {
		log.WithError(err).Warnf("failed opening board file %s", path)
		return nil, err
	}
	defer file.Close()
	return model.ReadBoard(file, layout)
}

func newSimulation(cfg *config.Config, withAudio bool) (*sim.Simulation, error) {
	var cues anim.CuePlayer
	if withAudio {
		player, err := newCuePlayer()
		if err != nil {
			log.WithError(err).Warn("audio disabled")
		} else {
			cues = player
		}
	}
	s := sim.New(cfg.Settings(), cues, rand.New(rand.NewSource(time.Now().UnixNano())), log.WithField("component", "viewer"))
	if cfg.BoardFile != "" {
		board, err := Load(cfg.BoardFile, cfg.Settings().Layout)
		if err != nil {
			return nil, err
		}
		s.SetBoard(board)
		return s, nil
	}
	return s, s.NewBoard(cfg.BoardSize)
}
