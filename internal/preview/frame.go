package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/screen"
)

var (
	statusBackground = color.RGBA{32, 32, 32, 255}
	statusText       = color.RGBA{220, 220, 220, 255}
	backdrop         = color.RGBA{16, 16, 16, 255}
)

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 28, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

type paintState struct {
	width, height int
	layout        layout
	surface       *image.RGBA
	status        string
	message       string
	messageUntil  time.Time
}

func drawFrame(s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Pt(st.width, st.height))
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	compose(b.RGBA(), st, time.Now())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// compose renders one frame into dst.
func compose(dst *image.RGBA, st paintState, now time.Time) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{backdrop}, image.Point{}, draw.Src)
	xdraw.NearestNeighbor.Scale(dst, st.layout.canvas, st.surface, st.surface.Bounds(), draw.Src, nil)
	drawStatus(dst, st.layout.status, st.status)
	if st.message != "" && now.Before(st.messageUntil) {
		drawMessage(dst, st.layout.canvas, st.message)
	}
}

func drawStatus(dst *image.RGBA, rect image.Rectangle, text string) {
	draw.Draw(dst, rect, &image.Uniform{statusBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(statusText), Face: basicfont.Face7x13}
	d.Dot = fixed.P(rect.Min.X+6, rect.Min.Y+(rect.Dy()+basicfont.Face7x13.Ascent)/2)
	d.DrawString(text)
}

func drawMessage(dst *image.RGBA, area image.Rectangle, msg string) {
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: messageFace}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	px := area.Min.X + (area.Dx()-wmsg)/2
	py := area.Min.Y + (area.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

func statusLine(mode fmt.Stringer, held int, scale float64) string {
	return fmt.Sprintf("mode: %s  contacts: %d  zoom: %.0f%%  [space] mode  [^S] save  [^C] copy  [q] quit",
		mode, held, scale*100)
}
