package survey

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// BurnoutLevel is the precomputed burnout stage: 1..5, or 0 when the upstream
// label was an error/invalid sentinel or missing.
type BurnoutLevel int

const (
	LevelInvalid BurnoutLevel = 0
	LevelMin     BurnoutLevel = 1
	LevelMax     BurnoutLevel = 5
	// LevelHighRisk is the first level counted as high/critical.
	LevelHighRisk BurnoutLevel = 4
)

// levelDescriptions holds the display text for each stage.
var levelDescriptions = map[BurnoutLevel]string{
	1: "No indication",
	2: "Possibility",
	3: "Initial phase",
	4: "Onset",
	5: "Considerable phase",
}

// Levels returns the five valid levels in order.
func Levels() []BurnoutLevel {
	return []BurnoutLevel{1, 2, 3, 4, 5}
}

// ParseBurnoutLevel accepts "Nível 3", "Nivel 3", "Level 3" or a bare "3" (also "3.0").
// Anything else, including the upstream "Erro"/"Inválido" sentinels, is LevelInvalid.
func ParseBurnoutLevel(raw string) BurnoutLevel {
	s := strings.TrimSpace(raw)
	if s == "" {
		return LevelInvalid
	}
	lower := strings.ToLower(s)
	for _, prefix := range []string{"nível", "nivel", "level"} {
		if strings.HasPrefix(lower, prefix) {
			lower = strings.TrimSpace(strings.TrimPrefix(lower, prefix))
			break
		}
	}
	if lower == "" || !unicode.IsDigit(rune(lower[0])) {
		return LevelInvalid
	}
	f, err := strconv.ParseFloat(lower, 64)
	if err != nil || f != float64(int(f)) {
		return LevelInvalid
	}
	lvl := BurnoutLevel(int(f))
	if !lvl.Valid() {
		return LevelInvalid
	}
	return lvl
}

// Valid reports whether the level is one of the five stages.
func (l BurnoutLevel) Valid() bool {
	return l >= LevelMin && l <= LevelMax
}

// HighRisk reports levels 4 and 5.
func (l BurnoutLevel) HighRisk() bool {
	return l.Valid() && l >= LevelHighRisk
}

func (l BurnoutLevel) String() string {
	if !l.Valid() {
		return "Invalid"
	}
	return fmt.Sprintf("Level %d", int(l))
}

// Description returns the stage description, e.g. "Level 4 (Onset)".
func (l BurnoutLevel) Description() string {
	if !l.Valid() {
		return l.String()
	}
	return fmt.Sprintf("%s (%s)", l.String(), levelDescriptions[l])
}

func (l BurnoutLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}
