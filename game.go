package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/color"
	_ "image/png"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/zucenko/navaid/braille"
	"github.com/zucenko/navaid/model"
	"golang.org/x/image/font"
)

const (
	size       = 40
	panelWidth = 380
	footer     = 150
	dotSize    = 3
)

func HexToF32(u uint32) GameColor {
	b := float64(0xff&u) / 255
	g := float64(0xff&(u>>8)) / 255
	r := float64(0xff&(u>>16)) / 255
	return GameColor{r, g, b}
}

type GameColor struct {
	r, g, b float64
}

func (c GameColor) RGBA() color.RGBA {
	return color.RGBA{uint8(c.r * 255), uint8(c.g * 255), uint8(c.b * 255), 255}
}

var COLOR_FLOOR = HexToF32(0x2b2f36)
var COLOR_OBSTACLE = HexToF32(0x6b7280)
var COLOR_USER = HexToF32(0x3b82f6)

var SEVERITY_COLORS = map[model.Severity]GameColor{
	model.HIGH:   HexToF32(0xdc2626),
	model.MEDIUM: HexToF32(0xca8a04),
	model.LOW:    HexToF32(0x2563eb),
}

type Game struct {
	View       *View
	Conn       *Connection
	Panel      *Nine
	Tweens     map[*gween.Tween]*Action
	Cols, Rows int
	markerX    float32
	markerY    float32
	shake      float32
	closed     bool
}

var Font font.Face

func loadFont(path string) font.Face {
	dat, err := ebitenutil.OpenFile(path)
	if err != nil {
		log.Warnf("font %s: %v, using debug font", path, err)
		return nil
	}
	defer dat.Close()
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(dat); err != nil {
		log.Warnf("font %s: %v", path, err)
		return nil
	}
	tt, err := truetype.Parse(buf.Bytes())
	if err != nil {
		log.Warnf("font %s: %v", path, err)
		return nil
	}
	const dpi = 72
	return truetype.NewFace(tt, &truetype.Options{
		Size:    18,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
}

func loadPanel(path string) *Nine {
	frame, _, err := ebitenutil.NewImageFromFile(path, ebiten.FilterDefault)
	if err != nil {
		log.Warnf("panel %s: %v, using flat panels", path, err)
		return nil
	}
	return &Nine{
		images: frame,
		alpha:  0.9,
		R:      1, G: 1, B: 1, Scale: .15,
		cuts: [4][2]int{{0, 0}, {56, 56}, {57, 57}, {112, 112}},
	}
}

func drawText(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	if Font == nil {
		ebitenutil.DebugPrintAt(screen, s, x, y-12)
		return
	}
	text.Draw(screen, s, Font, x, y, clr)
}

// drawBraille paints each pattern cell as dots since fonts rarely carry them.
func drawBraille(screen *ebiten.Image, cells string, x, y int) {
	cx := x
	for _, r := range cells {
		dots, ok := braille.Dots(r)
		if !ok {
			cx += 4 * dotSize
			continue
		}
		for i, raised := range dots {
			col, row := i/3, i%3
			if i >= 6 {
				col, row = i-6, 3
			}
			clr := color.RGBA{60, 70, 90, 255}
			if raised {
				clr = color.RGBA{219, 234, 254, 255}
			}
			ebitenutil.DrawRect(screen, float64(cx+col*2*dotSize), float64(y+row*2*dotSize),
				dotSize, dotSize, clr)
		}
		cx += 5 * dotSize
		if cx > x+screen.Bounds().Dx()-10*dotSize {
			cx = x
			y += 10 * dotSize
		}
	}
}

func (g *Game) send(cm model.ClientMessage) {
	if err := g.Conn.Send(cm); err != nil {
		log.Warnf("send: %v", err)
	}
}

func (g *Game) handleKeys() {
	move := func(dx, dy int) {
		g.send(model.ClientMessage{Move: &model.Move{DX: dx, DY: dy}})
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp), inpututil.IsKeyJustPressed(ebiten.KeyW):
		move(0, -1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown), inpututil.IsKeyJustPressed(ebiten.KeyS):
		move(0, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft), inpututil.IsKeyJustPressed(ebiten.KeyA):
		move(-1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight), inpututil.IsKeyJustPressed(ebiten.KeyD):
		move(1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.send(model.ClientMessage{ToggleVoice: true})
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.send(model.ClientMessage{Reset: true})
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.send(model.ClientMessage{Repeat: true})
	}
}

func (g *Game) drain() {
	for {
		select {
		case m := <-g.Conn.Incoming:
			before := g.View.Status.Position
			moved := g.View.Apply(m)
			for _, a := range m.Announcements {
				log.Infof("announce: %s", a)
			}
			pos := g.View.Status.Position
			switch {
			case moved:
				g.markerX, g.markerY = float32(before.X), float32(before.Y)
				g.glide(pos.X, pos.Y)
			case g.View.Status.Outcome == model.Blocked:
				g.bump()
			case len(g.Tweens) == 0:
				g.markerX, g.markerY = float32(pos.X), float32(pos.Y)
			}
		case <-g.Conn.Done:
			g.closed = true
			return
		default:
			return
		}
	}
}

func (g *Game) update(screen *ebiten.Image) error {
	if !g.closed {
		g.drain()
	}
	g.updateTweens(1.0 / 60)
	g.handleKeys()

	if ebiten.IsDrawingSkipped() {
		return nil
	}

	if err := screen.Fill(color.RGBA{17, 24, 39, 255}); err != nil {
		log.Printf("%v", err)
	}
	g.drawGrid(screen)
	g.drawDetections(screen, g.Cols*size+10, 10)
	g.drawFooter(screen, 10, g.Rows*size+10)

	state := g.View.Status.State
	if g.closed {
		state = "DISCONNECTED"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s voice:%v", state, g.View.Status.Voice),
		g.Cols*size+10, g.Rows*size+footer-20)
	return nil
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	st := g.View.Status
	for c := 0; c < g.Cols; c++ {
		for r := 0; r < g.Rows; r++ {
			ebitenutil.DrawRect(screen, float64(c*size+1), float64(r*size+1), size-2, size-2, COLOR_FLOOR.RGBA())
		}
	}
	for _, o := range st.Obstacles {
		clr := COLOR_OBSTACLE
		if d, ok := g.View.Detected(o.X, o.Y); ok {
			clr = SEVERITY_COLORS[d.Severity]
		}
		ebitenutil.DrawRect(screen, float64(o.X*size+4), float64(o.Y*size+4), size-8, size-8, clr.RGBA())
	}
	x := float64(g.markerX*size+size/4) + float64(g.shake)
	y := float64(g.markerY*size + size/4)
	ebitenutil.DrawRect(screen, x, y, size/2, size/2, COLOR_USER.RGBA())
}

func (g *Game) drawDetections(screen *ebiten.Image, x, y int) {
	st := g.View.Status
	height := g.Rows*size - 20
	g.Panel.Draw(screen, x, y, panelWidth-20, height)
	drawText(screen, fmt.Sprintf("Obstacle Detection  %d detected", len(st.Detections)), x+12, y+26, color.White)
	if len(st.Detections) == 0 {
		drawText(screen, "Path is Clear", x+12, y+60, HexToF32(0x86efac).RGBA())
		return
	}
	line := y + 60
	for _, d := range st.Detections {
		drawText(screen, fmt.Sprintf("%s  %s", d.Kind, strings.ToUpper(d.Severity.String())),
			x+12, line, SEVERITY_COLORS[d.Severity].RGBA())
		drawText(screen, fmt.Sprintf("%s  %.1f m  (%d, %d)", d.Direction, d.Distance, d.Obstacle.X, d.Obstacle.Y),
			x+24, line+20, color.White)
		line += 48
	}
}

func (g *Game) drawFooter(screen *ebiten.Image, x, y int) {
	st := g.View.Status
	drawText(screen, st.Message, x, y+16, color.White)
	drawBraille(screen, st.Braille, x, y+28)
	line := y + 80
	for _, s := range g.View.Spoken {
		drawText(screen, "> "+s, x, line, HexToF32(0x93c5fd).RGBA())
		line += 18
	}
	drawText(screen, fmt.Sprintf("position %v", st.Position), x+g.Cols*size-150, y+16, color.White)
}

func main() {
	addr := flag.String("addr", "localhost:8080", "navaid server host:port")
	fontPath := flag.String("font", "Teko-Light.ttf", "TrueType font")
	panelPath := flag.String("panel", "circle.png", "nine-slice panel image")
	flag.Parse()

	cfg, err := FetchConfig(*addr)
	if err != nil {
		log.Fatalf("fetch config: %v", err)
	}
	conn, err := Dial(*addr)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	Font = loadFont(*fontPath)
	g := &Game{
		View:   &View{Size: cfg.GridSize},
		Conn:   conn,
		Panel:  loadPanel(*panelPath),
		Tweens: make(map[*gween.Tween]*Action),
		Cols:   cfg.GridSize,
		Rows:   cfg.GridSize,
	}
	width := g.Cols*size + panelWidth
	height := g.Rows*size + footer
	if err := ebiten.Run(g.update, width, height, 1, "Navigation Assistant"); err != nil {
		log.Fatal(err)
	}
}
