package main

import (
	"image"
	"image/color"
	"math"
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/zucenko/checkers/config"
	"github.com/zucenko/checkers/model"
	"github.com/zucenko/checkers/sim"
	"github.com/zucenko/checkers/view"
)

const (
	screenWidth  = 560
	screenHeight = 620
	boardLeft    = 40
	boardTop     = 100
	boardSide    = 480
	swipe        = 25
)

var (
	colorBackground = color.RGBA{40, 36, 32, 255}
	colorLight      = color.RGBA{222, 200, 160, 255}
	colorDark       = color.RGBA{150, 110, 70, 255}
	colorArrow      = color.RGBA{60, 40, 20, 255}
	colorChecker    = color.RGBA{200, 30, 30, 255}
)

var sizeKeys = map[ebiten.Key]int{
	ebiten.Key3: 3, ebiten.Key4: 4, ebiten.Key5: 5, ebiten.Key6: 6,
	ebiten.Key7: 7, ebiten.Key8: 8, ebiten.Key9: 9,
}

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

type TouchStrokeSource struct {
	ID int
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

// Stroke tracks one drag from press to release.
type Stroke struct {
	source       StrokeSource
	initX, initY int
	currX, currY int
	released     bool
}

func NewStroke(source StrokeSource) *Stroke {
	cx, cy := source.Position()
	return &Stroke{source: source, initX: cx, initY: cy, currX: cx, currY: cy}
}

func (s *Stroke) Update() {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	s.currX, s.currY = s.source.Position()
}

func (s *Stroke) PositionDiff() (int, int) {
	return s.currX - s.initX, s.currY - s.initY
}

type GameState int

const (
	NO_RUN GameState = iota + 1
	IDLE
	MOVING
	PLAYING
)

func (s GameState) Name() string {
	switch s {
	case NO_RUN:
		return "NO_RUN"
	case IDLE:
		return "IDLE"
	case MOVING:
		return "MOVING"
	case PLAYING:
		return "PLAYING"
	default:
		return "N/A"
	}
}

type Game struct {
	State   GameState
	Sim     *sim.Simulation
	Frame   *Nine
	Tweens  map[*gween.Tween]*Action
	strokes map[*Stroke]struct{}
	size    int
	debug   bool

	checker    *ebiten.Image
	label      *ebiten.Image
	labelText  string
	labelAlpha float64
	flashing   bool
}

var Font font.Face

func init() {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}
	Font = truetype.NewFace(tt, &truetype.Options{
		Size:    24,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func NewGame(cfg *config.Config, withAudio bool) (*Game, error) {
	s, err := newSimulation(cfg, withAudio)
	if err != nil {
		return nil, err
	}
	frame, err := NewFrameNine(6, 2)
	if err != nil {
		return nil, err
	}
	frame.SetPosition(boardLeft-12, boardTop-12)
	frame.SetSize(boardSide+24, boardSide+24)

	checker, err := discImage(64)
	if err != nil {
		return nil, err
	}
	return &Game{
		State:   NO_RUN,
		Sim:     s,
		Frame:   frame,
		Tweens:  make(map[*gween.Tween]*Action),
		strokes: map[*Stroke]struct{}{},
		size:    s.Board().Size,
		checker: checker,
	}, nil
}

func discImage(d int) (*ebiten.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, d, d))
	r := float64(d) / 2
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			dist := math.Hypot(float64(x)+.5-r, float64(y)+.5-r)
			switch {
			case dist < r*.7:
				img.Set(x, y, color.White)
			case dist < r*.8:
				img.Set(x, y, color.RGBA{170, 170, 170, 255})
			case dist < r:
				img.Set(x, y, color.White)
			}
		}
	}
	return ebiten.NewImageFromImage(img, ebiten.FilterLinear)
}

func prepareTextImage(s string) *ebiten.Image {
	image, _ := ebiten.NewImage(screenWidth, 40, ebiten.FilterLinear)
	text.Draw(image, s, Font, 0, 28, color.White)
	return image
}

// showLabel swaps the label and fades it in, holds, then dims it.
func (g *Game) showLabel(s string, onDone func()) {
	g.labelText = s
	g.label = prepareTextImage(s)
	g.Tweens = make(map[*gween.Tween]*Action)
	set := func(v float32) { g.labelAlpha = float64(v) }

	in := &Action{onChange: set}
	g.Tweens[gween.New(0.2, 1, 0.25, ease.OutQuad)] = in
	out := in.next(gween.New(1, 1, 1.2, ease.Linear), set).
		next(gween.New(1, 0.6, 0.5, ease.InQuad), set)
	if onDone != nil {
		out.addOnFinish(onDone)
	}
}

func (g *Game) do(what string, f func() error) {
	if err := f(); err != nil {
		log.WithError(err).Warn(what)
		g.flashing = true
		g.showLabel(err.Error(), func() {
			g.flashing = false
			g.labelText = ""
		})
	}
}

func (g *Game) step(backward bool) {
	g.do("step", func() error {
		_, err := g.Sim.Step(backward)
		return err
	})
}

func (g *Game) togglePlay() {
	if g.Sim.Playing() {
		g.Sim.Stop()
		return
	}
	g.do("play", g.Sim.Play)
}

func (g *Game) newBoard(size int) {
	g.do("new board", func() error {
		if err := g.Sim.NewBoard(size); err != nil {
			return err
		}
		g.size = size
		return nil
	})
}

func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.do("new simulation", g.Sim.NewSimulation)
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.newBoard(g.size)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.step(false)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.step(true)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.togglePlay()
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.do("jump", func() error { return g.Sim.Jump(false) })
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		g.do("jump", func() error { return g.Sim.Jump(true) })
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.debug = !g.debug
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		os.Exit(0)
	}
	for k, size := range sizeKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.newBoard(size)
		}
	}
}

func (g *Game) handleStrokes() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.strokes[NewStroke(&MouseStrokeSource{})] = struct{}{}
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		g.strokes[NewStroke(&TouchStrokeSource{id})] = struct{}{}
	}
	for s := range g.strokes {
		s.Update()
		if !s.released {
			continue
		}
		delete(g.strokes, s)
		dx, dy := s.PositionDiff()
		gesture := view.Classify(dx, dy, swipe)
		log.WithField("gesture", gesture.Name()).Debug("swipe")
		switch gesture {
		case view.G_STEP_FORWARD:
			g.step(false)
		case view.G_STEP_BACKWARD:
			g.step(true)
		case view.G_PLAY:
			g.do("play", g.Sim.Play)
		case view.G_STOP:
			g.Sim.Stop()
		}
	}
}

func (g *Game) refreshState(f model.Frame) {
	state := IDLE
	switch {
	case f.Run == "":
		state = NO_RUN
	case f.Playing:
		state = PLAYING
	case f.Moving:
		state = MOVING
	}
	if state != g.State {
		log.WithFields(log.Fields{"from": g.State.Name(), "to": state.Name()}).Debug("state")
		g.State = state
	}
	if status := view.Status(f, g.size); !g.flashing && status != g.labelText {
		g.showLabel(status, nil)
	}
}

func (g *Game) update(screen *ebiten.Image) error {
	dt := 1 / float64(ebiten.MaxTPS())
	g.updateTweens(float32(dt))
	g.handleKeys()
	g.handleStrokes()
	g.Sim.Tick(dt)
	frame := g.Sim.Frame()
	g.refreshState(frame)

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	g.draw(screen, frame)
	return nil
}

func (g *Game) draw(screen *ebiten.Image, f model.Frame) {
	if err := screen.Fill(colorBackground); err != nil {
		log.WithError(err).Warn("fill")
	}
	board := g.Sim.Board()
	if board == nil {
		return
	}
	proj := view.Fit(board, boardLeft, boardTop, boardSide)
	g.Frame.Draw(screen)

	for _, n := range board.Nodes {
		x, y, side := proj.Square(board, n)
		c := colorLight
		if (n.Col+n.Row)%2 == 0 {
			c = colorDark
		}
		ebitenutil.DrawRect(screen, x, y, side, side, c)
		for _, l := range view.Arrow(n.Direction, x+side/2, y+side/2, side*.6) {
			ebitenutil.DrawLine(screen, l[0], l[1], l[2], l[3], colorArrow)
		}
	}

	if path := g.Sim.Path(); path != nil && f.PathOpacity > 0 {
		c := color.NRGBA{255, 240, 80, uint8(255 * f.PathOpacity)}
		for _, p := range path.Points {
			if !p.HasNext() {
				continue
			}
			x1, y1 := proj.Point(p.Position)
			x2, y2 := proj.Point(path.Points[p.Next].Position)
			ebitenutil.DrawLine(screen, x1, y1, x2, y2, c)
		}
	}

	if f.Run != "" {
		w, _ := g.checker.Size()
		scale := board.Layout.SquareSize * proj.Scale * .7 / float64(w)
		x, y := proj.Point(f.Checker)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(w)/2, -float64(w)/2)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x, y)
		op.ColorM.Scale(float64(colorChecker.R)/255, float64(colorChecker.G)/255, float64(colorChecker.B)/255, 1)
		screen.DrawImage(g.checker, op)
	}

	if g.label != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(boardLeft, 40)
		op.ColorM.Scale(1, 1, 1, g.labelAlpha)
		screen.DrawImage(g.label, op)
	}
	if g.debug {
		ebitenutil.DebugPrintAt(screen, view.Debug(f, ebiten.CurrentTPS())+"\n"+g.State.Name(), 4, 4)
	}
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
