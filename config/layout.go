package config

import (
	"bufio"
	"fmt"
	"io"

	"github.com/zucenko/navaid/model"
)

// Layout is a fixed environment read from a text map.
type Layout struct {
	Size      int
	User      model.Position
	Obstacles []model.Obstacle
}

// ReadLayout parses one grid row per line with cells at even columns:
//
//	. . #
//	. U .
//	# . .
//
// '#' is an obstacle, 'U' the user start and '.' an empty cell.
func ReadLayout(reader io.Reader) (*Layout, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	layout := &Layout{}
	users := 0
	row := 0
	width := -1

	for scanner.Scan() {
		s := scanner.Text()
		if s == "" {
			continue
		}
		col := 0
		for i, char := range s {
			if i%2 == 1 {
				if char != ' ' {
					return nil, fmt.Errorf("row %d: expected separator at %d, got %q", row, i, char)
				}
				continue
			}
			switch char {
			case '#':
				layout.Obstacles = append(layout.Obstacles, model.Obstacle{X: col, Y: row})
			case 'U':
				layout.User = model.Position{X: col, Y: row}
				users++
			case '.':
			default:
				return nil, fmt.Errorf("row %d: unknown cell %q", row, char)
			}
			col++
		}
		if width == -1 {
			width = col
		} else if width != col {
			return nil, fmt.Errorf("row %d: %d cells, expected %d", row, col, width)
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if row == 0 || width != row {
		return nil, fmt.Errorf("%w: layout must be square, got %dx%d", ErrInvalid, width, row)
	}
	if users != 1 {
		return nil, fmt.Errorf("%w: layout needs exactly one U, got %d", ErrInvalid, users)
	}
	layout.Size = row
	return layout, nil
}
