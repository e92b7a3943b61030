package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/audio"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/checkers/anim"
	"github.com/zucenko/checkers/sim"
	"github.com/zucenko/checkers/view"
)

const sampleRate = 44100

// cuePlayer plays synthesized cues through ebiten/audio.
type cuePlayer struct {
	context *audio.Context
	sounds  map[anim.CueID][]byte
	players map[anim.PlayHandle]*audio.Player
	next    anim.PlayHandle
}

func newCuePlayer() (*cuePlayer, error) {
	context, err := audio.NewContext(sampleRate)
	if err != nil {
		return nil, err
	}
	return &cuePlayer{
		context: context,
		sounds: map[anim.CueID][]byte{
			sim.CueMove: view.Slide(0.9, sampleRate),
			sim.CueStop: view.Tone(1200, 0.08, 60, sampleRate),
		},
		players: make(map[anim.PlayHandle]*audio.Player),
	}, nil
}

func (c *cuePlayer) PlayCue(id anim.CueID, offset, gain float64) anim.PlayHandle {
	c.collect()
	pcm, ok := c.sounds[id]
	if !ok {
		log.WithField("cue", id).Warn("unknown cue")
		return anim.NoPlay
	}
	p, err := audio.NewPlayerFromBytes(c.context, pcm)
	if err != nil {
		log.WithError(err).Warn("cue player")
		return anim.NoPlay
	}
	p.SetVolume(gain)
	if offset > 0 {
		if err := p.Seek(time.Duration(offset * float64(time.Second))); err != nil {
			log.WithError(err).Debug("cue seek")
		}
	}
	if err := p.Play(); err != nil {
		log.WithError(err).Warn("cue play")
		return anim.NoPlay
	}
	c.next++
	c.players[c.next] = p
	return c.next
}

func (c *cuePlayer) StopCue(h anim.PlayHandle) {
	p, ok := c.players[h]
	if !ok {
		return
	}
	delete(c.players, h)
	if err := p.Close(); err != nil {
		log.WithError(err).Debug("cue close")
	}
}

// collect closes players that ran out on their own.
func (c *cuePlayer) collect() {
	for h, p := range c.players {
		if !p.IsPlaying() {
			c.StopCue(h)
		}
	}
}
