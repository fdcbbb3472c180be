package translation

import (
	"fmt"
	"strings"
)

// Direction selects which alphabet is the source and which the target
type Direction int

const (
	ToAlien Direction = iota
	ToEnglish
)

func (d Direction) String() string {
	switch d {
	case ToAlien:
		return "toAlien"
	case ToEnglish:
		return "toEnglish"
	default:
		return "unknown"
	}
}

// Other returns the opposite direction
func (d Direction) Other() Direction {
	if d == ToAlien {
		return ToEnglish
	}
	return ToAlien
}

// SourceLanguage is the label of the editable side
func (d Direction) SourceLanguage() string {
	if d == ToAlien {
		return "English"
	}
	return "Alien"
}

// TargetLanguage is the label of the derived side
func (d Direction) TargetLanguage() string {
	return d.Other().SourceLanguage()
}

// ParseDirection accepts "toAlien", "toEnglish", "alien" and "english"
// in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toalien", "alien", "to-alien":
		return ToAlien, nil
	case "toenglish", "english", "to-english":
		return ToEnglish, nil
	}
	return ToAlien, fmt.Errorf("unknown direction %q", s)
}
