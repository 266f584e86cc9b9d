package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tactus-audio/tactus/pkg/engine"
	"github.com/tactus-audio/tactus/pkg/looper"
)

const (
	screenWidth  = 640
	screenHeight = 480
)

// mouseTouchID keeps the cursor out of the real multitouch id space.
const mouseTouchID = -1

var padParams = []string{
	engine.ParamGrime,
	engine.ParamFlow,
	engine.ParamShimmer,
	engine.ParamDepth,
	engine.ParamOctave,
}

// Game is the pad surface: the whole window is the touch plane, pitch
// left-to-right and brightness bottom-to-top.
type Game struct {
	eng  *engine.Engine
	loop *looper.Looper

	selected   int
	complexity float64

	mouseDown bool
	touchIDs  []ebiten.TouchID
}

func newGame(eng *engine.Engine, loop *looper.Looper) *Game {
	return &Game{eng: eng, loop: loop, complexity: 1.0}
}

// padPosition normalizes a screen point onto the touch plane. Screen y
// grows downward; pad y grows upward.
func padPosition(px, py, w, h int) (x, y float64) {
	x = float64(px) / float64(w)
	y = 1 - float64(py)/float64(h)
	if x < 0 {
		x = 0
	} else if x > 1 {
		x = 1
	}
	if y < 0 {
		y = 0
	} else if y > 1 {
		y = 1
	}
	return x, y
}

func (g *Game) Update() error {
	g.updateMouse()
	g.updateTouches()
	g.updateKeys()
	return nil
}

func (g *Game) updateMouse() {
	px, py := ebiten.CursorPosition()
	x, y := padPosition(px, py, screenWidth, screenHeight)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.eng.TouchStart(mouseTouchID, x, y, 1.0)
		g.mouseDown = true
	case g.mouseDown && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.eng.TouchMove(mouseTouchID, x, y, 1.0)
	case g.mouseDown:
		g.eng.TouchEnd(mouseTouchID)
		g.mouseDown = false
	}
}

func (g *Game) updateTouches() {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		px, py := ebiten.TouchPosition(id)
		x, y := padPosition(px, py, screenWidth, screenHeight)
		g.eng.TouchStart(int(id), x, y, 1.0)
	}

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		if inpututil.TouchPressDuration(id) <= 1 {
			continue
		}
		px, py := ebiten.TouchPosition(id)
		x, y := padPosition(px, py, screenWidth, screenHeight)
		g.eng.TouchMove(int(id), x, y, 1.0)
	}

	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		g.eng.TouchEnd(int(id))
	}
}

func (g *Game) updateKeys() {
	for i, key := range []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5} {
		if inpututil.IsKeyJustPressed(key) {
			g.selected = i
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.adjustParam(0.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.adjustParam(-0.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.adjustComplexity(-0.2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.adjustComplexity(0.2)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if g.loop.GetState().IsRecording {
			g.loop.StopRecording()
		} else {
			g.loop.StartRecording()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.loop.TogglePlayback()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.loop.Clear()
	}
}

func (g *Game) adjustParam(delta float64) {
	name := padParams[g.selected]
	g.eng.SetParameter(name, g.eng.GetParameter(name)+delta)
}

func (g *Game) adjustComplexity(delta float64) {
	g.complexity += delta
	if g.complexity < 0 {
		g.complexity = 0
	} else if g.complexity > 1 {
		g.complexity = 1
	}
	g.eng.SetComplexity(g.complexity)
}

var (
	bgColor    = color.RGBA{R: 16, G: 14, B: 24, A: 255}
	gridColor  = color.RGBA{R: 44, G: 38, B: 64, A: 255}
	touchColor = color.RGBA{R: 236, G: 120, B: 200, A: 255}
	recColor   = color.RGBA{R: 230, G: 60, B: 60, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	// Pitch columns and the octave band split.
	for i := 1; i < 5; i++ {
		x := float32(i) * screenWidth / 5
		vector.StrokeLine(screen, x, 0, x, screenHeight, 1, gridColor, false)
	}
	vector.StrokeLine(screen, 0, screenHeight/2, screenWidth, screenHeight/2, 1, gridColor, false)

	if g.mouseDown {
		px, py := ebiten.CursorPosition()
		vector.DrawFilledCircle(screen, float32(px), float32(py), 18, touchColor, true)
	}
	for _, id := range g.touchIDs {
		px, py := ebiten.TouchPosition(id)
		vector.DrawFilledCircle(screen, float32(px), float32(py), 18, touchColor, true)
	}

	st := g.loop.GetState()
	if st.IsRecording {
		vector.DrawFilledCircle(screen, 16, 16, 7, recColor, true)
	}
	if st.HasLoop {
		phase := float32(g.loop.PlaybackPosition())
		vector.StrokeLine(screen, 0, screenHeight-3, phase*screenWidth, screenHeight-3, 3, touchColor, false)
	}

	status := fmt.Sprintf("%s %.2f  voices %d  loop %.1fs",
		padParams[g.selected],
		g.eng.GetParameter(padParams[g.selected]),
		g.eng.ActiveVoices(),
		st.Duration)
	ebitenutil.DebugPrintAt(screen, status, 30, 8)
	ebitenutil.DebugPrintAt(screen, "1-5 param  arrows adjust  R rec  Space play  Bksp clear", 30, screenHeight-20)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
