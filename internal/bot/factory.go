package bot

import (
	"fmt"
	"math/rand"
)

// BotLevel selects a strategy.
type BotLevel int

const (
	BotLevelEasy BotLevel = iota
	BotLevelMedium
	BotLevelHard
)

func (l BotLevel) String() string {
	switch l {
	case BotLevelEasy:
		return "easy"
	case BotLevelMedium:
		return "medium"
	case BotLevelHard:
		return "hard"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel maps a configured difficulty name to a BotLevel.
func ParseLevel(name string) (BotLevel, error) {
	switch name {
	case "easy":
		return BotLevelEasy, nil
	case "medium", "":
		return BotLevelMedium, nil
	case "hard":
		return BotLevelHard, nil
	}
	return BotLevelMedium, fmt.Errorf("unknown bot level: %q", name)
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel, rng *rand.Rand) (Brain, error) {
	switch level {
	case BotLevelEasy:
		return NewEasyBot(rng), nil
	case BotLevelMedium:
		return &StandardBot{}, nil
	case BotLevelHard:
		return NewSmartBot(), nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
