package view

import (
	"fmt"

	"github.com/zucenko/checkers/model"
)

// Status is the one line label above the board.
func Status(f model.Frame, size int) string {
	if f.Run == "" {
		return fmt.Sprintf("%dx%d  N: new run", size, size)
	}
	kind := "open"
	if f.IsLoop {
		kind = "loop"
	}
	return fmt.Sprintf("%dx%d  %s %d/%d", size, size, kind, f.Front+1, len(f.Path))
}

// Debug is the overlay text.
func Debug(f model.Frame, tps float64) string {
	return fmt.Sprintf("TPS %0.1f\nrun %s\nmoving %v playing %v\nfront %d loopTo %d\nchecker %.1f %.1f %.1f",
		tps, f.Run, f.Moving, f.Playing, f.Front, f.LoopTo, f.Checker.X, f.Checker.Y, f.Checker.Z)
}
