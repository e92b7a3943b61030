package server

import (
	"github.com/matryer/way"
)

const (
	URI_WS      = "/play"
	URI_COMMAND = "/command/:name"
	URI_BOARD   = "/board/:size"
	URI_STATE   = "/state"
)

func (gs *GameServer) Router() *way.Router {
	router := way.NewRouter()
	router.HandleFunc("GET", URI_WS, gs.HandleHttpCall())
	router.HandleFunc("POST", URI_COMMAND, gs.HandleCommand())
	router.HandleFunc("POST", URI_BOARD, gs.HandleBoard())
	router.HandleFunc("GET", URI_STATE, gs.HandleState())
	return router
}
