package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	log "github.com/sirupsen/logrus"

	"github.com/smasonuk/geomap3d"
)

type Options struct {
	World      *geomap3d.World
	Viewport   *geomap3d.Viewport
	Controls   *geomap3d.OrbitControls
	Picker     *geomap3d.Picker
	Label      *geomap3d.Label
	Face       *text.GoTextFace
	Background color.RGBA
	ShowFPS    bool

	// MapResults delivers the province layer once it is built.
	MapResults <-chan geomap3d.MapResult
	// OnMap is called on the frame the map result arrives.
	OnMap func(geomap3d.MapResult)
	// OnFrame is called once per drawn frame.
	OnFrame func()
}

// Game drives the map: input and picking in Update, painting in Draw.
type Game struct {
	opts    Options
	pointer geomap3d.Pointer
	batcher *PolygonBatcher

	cursorX, cursorY int
	dragging         bool
	lastX, lastY     int
}

func NewGame(opts Options) *Game {
	if opts.World == nil {
		opts.World = geomap3d.NewWorld()
	}
	if opts.Label == nil {
		opts.Label = &geomap3d.Label{}
	}
	if opts.Viewport == nil {
		opts.Viewport = geomap3d.NewViewport(0, 0)
	}
	return &Game{
		opts:    opts,
		batcher: NewPolygonBatcher(),
		cursorX: -1,
		cursorY: -1,
	}
}

func (g *Game) Pointer() *geomap3d.Pointer {
	return &g.pointer
}

func (g *Game) Update() error {
	g.receiveMap()
	g.readPointer()
	g.updateControls()

	cam := g.opts.World.Camera()
	if g.pointer.Moved() && g.opts.Picker != nil && cam != nil {
		g.opts.Picker.Update(g.pointer.NDC(g.opts.Viewport), cam, g.opts.World.Children())
	}
	return nil
}

func (g *Game) receiveMap() {
	if g.opts.MapResults == nil {
		return
	}
	select {
	case res, ok := <-g.opts.MapResults:
		g.opts.MapResults = nil
		if !ok {
			return
		}
		if res.Err != nil {
			log.WithError(res.Err).Warn("Rendering without province layer")
		} else if res.Map != nil {
			g.opts.World.AddObject(res.Map)
			log.WithField("elapsed", res.Elapsed).Info("Province layer added.")
		}
		if g.opts.OnMap != nil {
			g.opts.OnMap(res)
		}
	default:
	}
}

// readPointer feeds mouse moves and touch starts into the same pointer position.
func (g *Game) readPointer() {
	x, y := ebiten.CursorPosition()
	if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.setPointer(float64(x), float64(y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		g.setPointer(float64(tx), float64(ty))
	}
}

func (g *Game) setPointer(x, y float64) {
	g.pointer.Set(x, y)
	g.opts.Label.MoveTo(x, y)
}

func (g *Game) updateControls() {
	c := g.opts.Controls
	if c == nil {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragging = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.dragging {
		x, y := ebiten.CursorPosition()
		c.Rotate(float64(x-g.lastX), float64(y-g.lastY), g.opts.Viewport.Height)
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		c.Zoom(wy)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Background)

	g.batcher.Begin(screen)
	g.opts.World.PaintObjects(g.batcher, g.opts.Viewport)
	g.batcher.Flush()

	drawLabel(screen, g.opts.Face, g.opts.Label)

	if g.opts.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f", ebiten.ActualFPS()))
	}
	if g.opts.OnFrame != nil {
		g.opts.OnFrame()
	}
}

// Layout renders at the window size and keeps the camera aspect in step with it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if cam := g.opts.World.Camera(); cam != nil {
		if g.opts.Viewport.Resize(outsideWidth, outsideHeight, cam) {
			log.WithFields(log.Fields{
				"width":  outsideWidth,
				"height": outsideHeight,
			}).Debug("Viewport resized")
		}
	}
	return max(outsideWidth, 1), max(outsideHeight, 1)
}

// Run opens a resizable window and blocks until it is closed.
func Run(g *Game, title string, width, height int) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("render loop: %w", err)
	}
	return nil
}
