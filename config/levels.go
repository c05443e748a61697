package config

import (
	"encoding/json"
	"os"
)

// LevelThresholds is the monotonic level curve: Thresholds[i] is the total
// XP required to reach level i+2 (level 1 needs none).
type LevelThresholds struct {
	Thresholds []int `json:"thresholds"`
}

var defaultThresholds = []int{
	100, 250, 450, 700, 1000, 1400, 1900, 2500, 3200, 4000,
	5000, 6200, 7600, 9200, 11000, 13000, 15500, 18500, 22000, 26000,
}

// LoadLevelThresholds reads the curve from LEVEL_TABLE_FILE or falls back
// to the built-in table.
func LoadLevelThresholds() (*LevelThresholds, error) {
	if path := os.Getenv("LEVEL_TABLE_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var lt LevelThresholds
		if err := json.Unmarshal(data, &lt); err != nil {
			return nil, err
		}
		if len(lt.Thresholds) > 0 {
			return &lt, nil
		}
	}
	return &LevelThresholds{Thresholds: defaultThresholds}, nil
}

// LevelFor returns the level reached with the given total XP. Levels are
// capped at the top of the table; prestige handling lives elsewhere.
func (lt *LevelThresholds) LevelFor(xp int) int {
	level := 1
	for _, threshold := range lt.Thresholds {
		if xp < threshold {
			break
		}
		level++
	}
	return level
}

// MaxLevel is the highest level the curve can produce.
func (lt *LevelThresholds) MaxLevel() int {
	return len(lt.Thresholds) + 1
}
