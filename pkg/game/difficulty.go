package game

import (
	"strings"

	"github.com/pkg/errors"
)

type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var ErrUnknownDifficulty = errors.New("game: unknown difficulty")

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, errors.Wrapf(ErrUnknownDifficulty, "%q", s)
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "unknown"
}

// Search depth used by minimax when none is configured
func (d Difficulty) DefaultDepth() int {
	switch d {
	case Easy:
		return 1
	case Medium:
		return 3
	}
	return 5
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if d > Hard {
		return nil, errors.Wrapf(ErrUnknownDifficulty, "value %d", uint8(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
