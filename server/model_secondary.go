package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/zucenko/checkers/model"
	"github.com/zucenko/checkers/sim"
)

var ErrUnknownCommand = errors.New("unknown command")

type Command int

const (
	CMD_NEW_BOARD Command = iota + 1
	CMD_NEW_SIMULATION
	CMD_STEP_FORWARD
	CMD_STEP_BACKWARD
	CMD_PLAY
	CMD_STOP
	CMD_JUMP_START
	CMD_JUMP_END
)

var commandNames = map[Command]string{
	CMD_NEW_BOARD:      "new-board",
	CMD_NEW_SIMULATION: "new",
	CMD_STEP_FORWARD:   "step-forward",
	CMD_STEP_BACKWARD:  "step-backward",
	CMD_PLAY:           "play",
	CMD_STOP:           "stop",
	CMD_JUMP_START:     "jump-start",
	CMD_JUMP_END:       "jump-end",
}

func (c Command) Name() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return fmt.Sprintf("n/a:%d", c)
}

func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

type CommandRequest struct {
	Command Command
	Size    int
	// Result gets exactly one reply when not nil. It must be buffered.
	Result chan CommandResult
}

type CommandResult struct {
	Moved bool
	Err   error
	Frame model.Frame
}

// StatusFor maps simulation errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnknownCommand),
		errors.Is(err, model.ErrBoardSize),
		errors.Is(err, model.ErrStartIndex),
		errors.Is(err, model.ErrTargetIndex),
		errors.Is(err, model.ErrEmptyPath),
		errors.Is(err, model.ErrBoardFile):
		return http.StatusBadRequest
	case errors.Is(err, sim.ErrNoBoard),
		errors.Is(err, sim.ErrNoSimulation),
		errors.Is(err, model.ErrNoActiveCursor),
		errors.Is(err, model.ErrEmptyBoard):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (gss GameServerState) Name() string {
	switch gss {
	case GS_NEW:
		return "GS_NEW"
	case GS_PLAY:
		return "GS_PLAY"
	case GS_OVER:
		return "GS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", gss)
	}
}

func (ps SpectatorState) Name() string {
	switch ps {
	case PS_NEW:
		return "NEW"
	case PS_PLAY:
		return "PLAY"
	case PS_OVER:
		return "OVER"
	case PS_ERR:
		return "ERR"
	default:
		return "N/A"
	}
}
