package resourcelib

import (
	"fmt"
	"strings"
)

// Game selects the resource formats of one game release.
type Game int

const (
	HM2016 Game = iota
	HM2
	HM3
)

var gameNames = map[Game]string{
	HM2016: "HM2016",
	HM2:    "HM2",
	HM3:    "HM3",
}

// String returns the prefix used by the exported C functions of this game, eg. HM3.
func (g Game) String() string {
	if name, ok := gameNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Game(%d)", int(g))
}

// ParseGame parses a game name. Besides the function prefixes (HM2016, HM2, HM3),
// the short names H1, H2 and H3 are accepted. Case is ignored.
func ParseGame(s string) (Game, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HM2016", "H1", "H2016":
		return HM2016, nil
	case "HM2", "H2":
		return HM2, nil
	case "HM3", "H3":
		return HM3, nil
	}
	return 0, fmt.Errorf("unknown game %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (g Game) MarshalText() ([]byte, error) {
	if _, ok := gameNames[g]; !ok {
		return nil, fmt.Errorf("unknown game %d", int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Game) UnmarshalText(text []byte) error {
	parsed, err := ParseGame(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
