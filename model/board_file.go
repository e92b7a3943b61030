package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrBoardFile = errors.New("bad board file")

// ReadBoard parses a square board drawn with ^ > v <, one line per row, the
// top line being the highest row. Squares sit on even columns; odd columns
// are separators. Blank lines and lines starting with # are skipped.
func ReadBoard(reader io.Reader, layout Layout) (*Board, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	lines := make([][]Direction, 0)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		s := strings.TrimRight(scanner.Text(), " \t\r")
		if s == "" || strings.HasPrefix(strings.TrimSpace(s), "#") {
			continue
		}
		line := make([]Direction, 0)
		for i, char := range []rune(s) {
			if i%2 == 1 {
				// separator
				continue
			}
			d, ok := ParseDirection(char)
			if !ok {
				return nil, fmt.Errorf("%w: line %d col %d: unknown square %q", ErrBoardFile, lineNo, i/2, char)
			}
			line = append(line, d)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	size := len(lines)
	if size == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBoardFile)
	}
	dirs := make([]Direction, 0, size*size)
	// bottom line is row 0
	for r := size - 1; r >= 0; r-- {
		if len(lines[r]) != size {
			return nil, fmt.Errorf("%w: row %d has %d squares, want %d", ErrBoardFile, size-1-r, len(lines[r]), size)
		}
		dirs = append(dirs, lines[r]...)
	}
	return NewBoard(size, dirs, layout)
}

// WriteBoard is the inverse of ReadBoard.
func WriteBoard(w io.Writer, b *Board) error {
	for row := b.Size - 1; row >= 0; row-- {
		var sb strings.Builder
		for col := 0; col < b.Size; col++ {
			if col > 0 {
				sb.WriteRune(' ')
			}
			sb.WriteRune(b.Node(col, row).Direction.Rune())
		}
		sb.WriteRune('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}
