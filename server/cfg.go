package server

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/checkers/model"
)

// LoadBoard reads a board file from disk, see model.ReadBoard for the format.
func LoadBoard(path string, layout model.Layout) (*model.Board, error) {
	file, err := os.Open(path)
	if err != nil {
		log.WithError(err).Warnf("failed opening board file %s", path)
		return nil, err
	}
	defer file.Close()
	return model.ReadBoard(file, layout)
}
