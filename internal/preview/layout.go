package preview

import (
	"image"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

const statusHeight = 24

// layout places the scaled surface at the top-left of the window with the
// status bar underneath.
type layout struct {
	scale  float64
	canvas image.Rectangle
	status image.Rectangle
}

func newLayout(surfW, surfH, winW, winH int) layout {
	avail := max(winH-statusHeight, 1)
	scale := min(float64(winW)/float64(surfW), float64(avail)/float64(surfH))
	if scale <= 0 {
		scale = 1
	}
	cw := int(float64(surfW) * scale)
	ch := int(float64(surfH) * scale)
	return layout{
		scale:  scale,
		canvas: image.Rect(0, 0, cw, ch),
		status: image.Rect(0, winH-statusHeight, winW, winH),
	}
}

// windowSize returns the window dimensions that show the surface at scale.
func windowSize(surfW, surfH int, scale float64) (int, int) {
	return max(int(float64(surfW)*scale), 1), max(int(float64(surfH)*scale), 1) + statusHeight
}

// toSurface maps a window pixel onto surface coordinates.
func (l layout) toSurface(p image.Point) (image.Point, bool) {
	if !p.In(l.canvas) {
		return image.Point{}, false
	}
	return image.Pt(int(float64(p.X)/l.scale), int(float64(p.Y)/l.scale)), true
}

// slotFor maps mouse buttons onto contact slots.
func slotFor(b mouse.Button) (int, bool) {
	switch b {
	case mouse.ButtonLeft:
		return 0, true
	case mouse.ButtonMiddle:
		return 1, true
	case mouse.ButtonRight:
		return 2, true
	}
	return 0, false
}

type action int

const (
	actionNone action = iota
	actionCycle
	actionCopy
	actionSave
	actionQuit
)

func (a action) String() string {
	switch a {
	case actionCycle:
		return "cycle"
	case actionCopy:
		return "copy"
	case actionSave:
		return "save"
	case actionQuit:
		return "quit"
	}
	return "none"
}

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Code      key.Code
	Modifiers key.Modifiers
}

var shortcuts = map[KeyShortcut]action{
	{Code: key.CodeSpacebar}:                     actionCycle,
	{Code: key.CodeVolumeUp}:                     actionCycle,
	{Code: key.CodeC, Modifiers: key.ModControl}: actionCopy,
	{Code: key.CodeS, Modifiers: key.ModControl}: actionSave,
	{Code: key.CodeQ}:                            actionQuit,
	{Code: key.CodeEscape}:                       actionQuit,
}

// actionFor resolves a key press. Shift and meta are ignored.
func actionFor(e key.Event) action {
	if e.Direction != key.DirPress {
		return actionNone
	}
	mods := e.Modifiers &^ (key.ModShift | key.ModMeta)
	return shortcuts[KeyShortcut{Code: e.Code, Modifiers: mods}]
}
