// Package mode implements the drawing-mode state machine that reacts to
// contact transitions.
package mode

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode is one of the closed set of drawing behaviours.
type Mode int

const (
	Paint Mode = iota
	Fill
	Box
	Follow
)

// All lists the modes in cycling order.
var All = []Mode{Paint, Fill, Box, Follow}

var successor = map[Mode]Mode{
	Paint:  Fill,
	Fill:   Box,
	Box:    Follow,
	Follow: Paint,
}

var names = map[Mode]string{
	Paint:  "paint",
	Fill:   "fill",
	Box:    "box",
	Follow: "follow",
}

// Next returns the mode that follows m when cycling.
func (m Mode) Next() Mode {
	return successor[m]
}

// Valid reports whether m is a member of the set.
func (m Mode) Valid() bool {
	_, ok := names[m]
	return ok
}

func (m Mode) String() string {
	if n, ok := names[m]; ok {
		return n
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Parse accepts a mode name or its index.
func Parse(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, n := range names {
		if n == s {
			return m, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Mode(n).Valid() {
		return Mode(n), nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}
