package server

import (
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/checkers/model"
	"github.com/zucenko/checkers/sim"
)

// GameServer owns one simulation. Only Loop touches it.
type GameServer struct {
	State      GameServerState
	Sim        *sim.Simulation
	Spectators map[int32]*Spectator
	Commands   chan CommandRequest
	Joins      chan *Spectator
	Leaves     chan *Spectator
	Upgrader   *websocket.Upgrader
	Interval   time.Duration
	Timeout    time.Duration
	log        *log.Entry
	nextId     int32
	done       chan struct{}
	states     chan chan StateReply
}

type GameServerState int

const (
	GS_NEW GameServerState = iota
	GS_PLAY
	GS_OVER
)

type SpectatorState int

const (
	PS_NEW SpectatorState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

type Spectator struct {
	State    SpectatorState
	Id       int32
	Conn     *websocket.Conn
	GameOver chan struct{}

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugDropped     int
	DebugLastMessage time.Time
}
