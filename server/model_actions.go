package server

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/checkers/model"
	"github.com/zucenko/checkers/sim"
)

type StateReply struct {
	Setup model.Setup
	Frame model.Frame
}

func NewGameServer(s *sim.Simulation, interval time.Duration, logger *log.Entry) *GameServer {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &GameServer{
		State:      GS_NEW,
		Sim:        s,
		Spectators: make(map[int32]*Spectator),
		Commands:   make(chan CommandRequest, 16),
		Joins:      make(chan *Spectator),
		Leaves:     make(chan *Spectator),
		Upgrader:   &websocket.Upgrader{},
		Interval:   interval,
		Timeout:    200 * time.Millisecond,
		log:        logger,
		done:       make(chan struct{}),
		states:     make(chan chan StateReply),
	}
}

// Loop runs the simulation until ctx ends. Every access to Sim happens here.
func (gs *GameServer) Loop(ctx context.Context) {
	gs.log.Info("GameServer.Loop starting")
	gs.State = GS_PLAY
	ticker := time.NewTicker(gs.Interval)
	defer ticker.Stop()
	defer close(gs.done)
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			gs.State = GS_OVER
			for _, sp := range gs.Spectators {
				gs.drop(sp)
			}
			gs.log.Info("GameServer.Loop ended")
			return
		case now := <-ticker.C:
			gs.Sim.Tick(now.Sub(last).Seconds())
			last = now
			gs.broadcast(model.ServerMessage{Frames: []model.Frame{gs.Sim.Frame()}})
		case sp := <-gs.Joins:
			sp.State = PS_PLAY
			gs.Spectators[sp.Id] = sp
			gs.log.WithField("spectator", sp.Id).Info("spectator joined")
			gs.send(sp, gs.setupMessage())
		case sp := <-gs.Leaves:
			gs.drop(sp)
		case req := <-gs.Commands:
			res := gs.apply(req)
			if req.Result != nil {
				req.Result <- res
			}
		case reply := <-gs.states:
			setup, frame := gs.Sim.Snapshot()
			reply <- StateReply{Setup: setup, Frame: frame}
		}
	}
}

func (gs *GameServer) apply(req CommandRequest) CommandResult {
	var (
		moved        bool
		err          error
		boardChanged bool
	)
	switch req.Command {
	case CMD_NEW_BOARD:
		size := req.Size
		if size == 0 && gs.Sim.Board() != nil {
			size = gs.Sim.Board().Size
		}
		err = gs.Sim.NewBoard(size)
		boardChanged = err == nil
	case CMD_NEW_SIMULATION:
		err = gs.Sim.NewSimulation()
	case CMD_STEP_FORWARD:
		moved, err = gs.Sim.Step(false)
	case CMD_STEP_BACKWARD:
		moved, err = gs.Sim.Step(true)
	case CMD_PLAY:
		err = gs.Sim.Play()
		moved = gs.Sim.Playing()
	case CMD_STOP:
		gs.Sim.Stop()
	case CMD_JUMP_START:
		err = gs.Sim.Jump(false)
	case CMD_JUMP_END:
		err = gs.Sim.Jump(true)
	default:
		err = ErrUnknownCommand
	}

	entry := gs.log.WithFields(log.Fields{"command": req.Command.Name(), "moved": moved})
	if err != nil {
		entry.WithError(err).Warn("command failed")
	} else {
		entry.Debug("command applied")
	}
	if boardChanged {
		gs.broadcast(gs.setupMessage())
	}
	return CommandResult{Moved: moved, Err: err, Frame: gs.Sim.Frame()}
}

func (gs *GameServer) setupMessage() model.ServerMessage {
	return model.ServerMessage{
		Setup:  []model.Setup{gs.Sim.Setup()},
		Frames: []model.Frame{gs.Sim.Frame()},
	}
}

func (gs *GameServer) broadcast(mes model.ServerMessage) {
	for _, sp := range gs.Spectators {
		gs.send(sp, mes)
	}
}

// send never blocks the loop; slow spectators lose frames.
func (gs *GameServer) send(sp *Spectator, mes model.ServerMessage) {
	select {
	case sp.MessagesToSend <- mes:
	default:
		sp.DebugDropped++
		sp.State = PS_ERR
		gs.log.WithField("spectator", sp.Id).Warn("Dropping message, MessagesToSend FULL")
	}
}

func (gs *GameServer) drop(sp *Spectator) {
	if _, found := gs.Spectators[sp.Id]; !found {
		return
	}
	delete(gs.Spectators, sp.Id)
	sp.State = PS_OVER
	close(sp.MessagesToSend)
	gs.log.WithFields(log.Fields{
		"spectator": sp.Id,
		"dropped":   sp.DebugDropped,
	}).Info("spectator left")
}

// HandleHttpCall upgrades to a websocket and streams frames until either side
// goes away.
func (gs *GameServer) HandleHttpCall() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		con, err := gs.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			gs.log.WithError(err).Warn("HandleHttpCall websocket upgrade")
			return
		}
		defer con.Close()

		sp := &Spectator{
			State:          PS_NEW,
			Id:             atomic.AddInt32(&gs.nextId, 1),
			Conn:           con,
			GameOver:       make(chan struct{}),
			MessagesToSend: make(chan model.ServerMessage, 10),
		}
		select {
		case gs.Joins <- sp:
		case <-gs.done:
			return
		case <-time.After(gs.Timeout):
			gs.log.Warn("Joins TIMEOUTED")
			return
		}

		go sp.LoopChannelWrite(gs.log)
		sp.LoopChannelRead(gs)

		select {
		case gs.Leaves <- sp:
		case <-gs.done:
		}
		<-sp.GameOver
	}
}

func (sp *Spectator) LoopChannelRead(gs *GameServer) {
	entry := gs.log.WithField("spectator", sp.Id)
	defer func() {
		entry.WithFields(log.Fields{
			"in":   sp.DebugInMessages,
			"last": sp.DebugLastMessage,
		}).Debug("LoopChannelRead ended")
	}()
	for {
		_, r, err := sp.Conn.NextReader()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				entry.WithError(err).Debug("read")
			}
			return
		}
		cm := &model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(cm); err != nil {
			entry.WithError(err).Warn("cant decode")
			return
		}
		sp.DebugInMessages++
		sp.DebugLastMessage = time.Now()

		cmd, err := ParseCommand(cm.Command)
		if err != nil {
			entry.WithError(err).Warn("ignoring client message")
			continue
		}
		select {
		case gs.Commands <- CommandRequest{Command: cmd, Size: cm.Size}:
		default:
			entry.Warn("Dropping command, Commands FULL")
		}
	}
}

// LoopChannelWrite only consumes, the loop never waits on it.
func (sp *Spectator) LoopChannelWrite(logger *log.Entry) {
	entry := logger.WithField("spectator", sp.Id)
	defer close(sp.GameOver)
	defer sp.Conn.Close()

	for mes := range sp.MessagesToSend {
		w, err := sp.Conn.NextWriter(websocket.BinaryMessage)
		if err != nil {
			entry.WithError(err).Warn("cant get writer")
			return
		}
		if err := gob.NewEncoder(w).Encode(mes); err != nil {
			entry.WithError(err).Warn("cant encode")
			return
		}
		if err := w.Close(); err != nil {
			if e, ok := err.(net.Error); ok && e.Timeout() {
				continue
			}
			entry.WithError(err).Warn("cant flush")
			return
		}
		sp.DebugOutMessages++
	}
	entry.WithField("out", sp.DebugOutMessages).Debug("LoopChannelWrite ended")
	_ = sp.Conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"),
		time.Now().Add(time.Second))
}

func (gs *GameServer) HandleCommand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := ParseCommand(way.Param(r.Context(), "name"))
		if err != nil {
			writeError(w, err)
			return
		}
		size := 0
		if s := r.URL.Query().Get("size"); s != "" {
			if size, err = strconv.Atoi(s); err != nil {
				writeError(w, model.ErrBoardSize)
				return
			}
		}
		gs.submit(w, CommandRequest{Command: cmd, Size: size})
	}
}

func (gs *GameServer) HandleBoard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		size, err := strconv.Atoi(way.Param(r.Context(), "size"))
		if err != nil || size < 1 {
			writeError(w, model.ErrBoardSize)
			return
		}
		gs.submit(w, CommandRequest{Command: CMD_NEW_BOARD, Size: size})
	}
}

func (gs *GameServer) HandleState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan StateReply, 1)
		select {
		case gs.states <- reply:
		case <-gs.done:
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		case <-time.After(gs.Timeout):
			w.WriteHeader(http.StatusRequestTimeout)
			return
		}
		writeJSON(w, http.StatusOK, <-reply)
	}
}

type commandResponse struct {
	Command string      `json:"command"`
	Moved   bool        `json:"moved"`
	Error   string      `json:"error,omitempty"`
	Frame   model.Frame `json:"frame"`
}

func (gs *GameServer) submit(w http.ResponseWriter, req CommandRequest) {
	req.Result = make(chan CommandResult, 1)
	select {
	case gs.Commands <- req:
	case <-gs.done:
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	case <-time.After(gs.Timeout):
		gs.log.Warn("Commands TIMEOUTED")
		w.WriteHeader(http.StatusRequestTimeout)
		return
	}
	var res CommandResult
	select {
	case res = <-req.Result:
	case <-time.After(gs.Timeout):
		w.WriteHeader(http.StatusRequestTimeout)
		return
	}
	body := commandResponse{Command: req.Command.Name(), Moved: res.Moved, Frame: res.Frame}
	if res.Err != nil {
		body.Error = res.Err.Error()
	}
	writeJSON(w, StatusFor(res.Err), body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("write response")
	}
}
