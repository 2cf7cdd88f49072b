package render

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/smasonuk/geomap3d"
)

const (
	DefaultFontSize = 14
	labelPadding    = 4
)

var (
	labelText       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	labelBackground = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xa0}
)

// LoadFace reads a TrueType/OpenType font or collection for the label. An empty path
// gives Go Regular, which has no CJK glyphs.
func LoadFace(path string, size float64) (*text.GoTextFace, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	if path == "" {
		log.Warn("Using Go Regular for labels, Chinese province names will not render; set label.font")
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		return &text.GoTextFace{Source: src, Size: size}, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	var src *text.GoTextFaceSource
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		srcs, err := text.NewGoTextFaceSourcesFromCollection(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("failed to parse font collection %s: %w", path, err)
		}
		if len(srcs) == 0 {
			return nil, fmt.Errorf("font collection %s is empty", path)
		}
		src = srcs[0]
	} else if src, err = text.NewGoTextFaceSource(bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return &text.GoTextFace{Source: src, Size: size}, nil
}

func drawLabel(screen *ebiten.Image, face *text.GoTextFace, l *geomap3d.Label) {
	if !l.Visible || l.Text == "" || face == nil {
		return
	}
	w, h := text.Measure(l.Text, face, face.Size*1.2)
	vector.DrawFilledRect(screen,
		float32(l.X), float32(l.Y),
		float32(w+2*labelPadding), float32(h+2*labelPadding),
		labelBackground, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(l.X+labelPadding, l.Y+labelPadding)
	op.ColorScale.ScaleWithColor(labelText)
	text.Draw(screen, l.Text, face, op)
}
