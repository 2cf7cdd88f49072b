package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/paulmach/orb"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v2"

	"github.com/smasonuk/geomap3d"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Data       DataConfig       `yaml:"data"`
	Projection ProjectionConfig `yaml:"projection"`
	Extrude    ExtrudeConfig    `yaml:"extrude"`
	Style      StyleConfig      `yaml:"style"`
	Camera     CameraConfig     `yaml:"camera"`
	Controls   ControlsConfig   `yaml:"controls"`
	Label      LabelConfig      `yaml:"label"`
	Feed       FeedConfig       `yaml:"feed"`
	Log        LogConfig        `yaml:"log"`
}

type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
	ShowFPS    bool   `yaml:"show_fps"`
}

type DataConfig struct {
	Path string `yaml:"path"`
}

type ProjectionConfig struct {
	Center    []float64 `yaml:"center"`
	Scale     float64   `yaml:"scale"`
	Translate []float64 `yaml:"translate"`
}

type ExtrudeConfig struct {
	Depth float64 `yaml:"depth"`
}

type StyleConfig struct {
	Fill        string  `yaml:"fill"`
	FillOpacity float64 `yaml:"fill_opacity"`
	Edge        string  `yaml:"edge"`
	EdgeOpacity float64 `yaml:"edge_opacity"`
	Outline     string  `yaml:"outline"`
	Highlight   string  `yaml:"highlight"`
	LineWidth   float64 `yaml:"line_width"`
}

type CameraConfig struct {
	Fov      float64   `yaml:"fov"`
	Near     float64   `yaml:"near"`
	Far      float64   `yaml:"far"`
	Position []float64 `yaml:"position"`
	Target   []float64 `yaml:"target"`
}

type ControlsConfig struct {
	RotateSpeed float64 `yaml:"rotate_speed"`
	ZoomSpeed   float64 `yaml:"zoom_speed"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
}

type LabelConfig struct {
	Font string  `yaml:"font"`
	Size float64 `yaml:"size"`
}

// CJKFonts are the system fonts tried, in order, when label.font is empty.
var CJKFonts = []string{
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/google-noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/usr/share/fonts/wenquanyi/wqy-microhei/wqy-microhei.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/STHeiti Light.ttc",
	`C:\Windows\Fonts\msyh.ttc`,
	`C:\Windows\Fonts\simhei.ttf`,
}

// FeedConfig enables the pick feed server when Addr is set.
type FeedConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the settings the map was designed with.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "geomap3d",
			Width:      1280,
			Height:     800,
			Background: "#000000",
		},
		Data: DataConfig{
			Path: "data/china.json",
		},
		Projection: ProjectionConfig{
			Center:    []float64{geomap3d.DefaultCenter.Lon(), geomap3d.DefaultCenter.Lat()},
			Scale:     geomap3d.DefaultScale,
			Translate: []float64{0, 0},
		},
		Extrude: ExtrudeConfig{
			Depth: 4,
		},
		Style: StyleConfig{
			Fill:        "#02A1E2",
			FillOpacity: 0.6,
			Edge:        "#3480C4",
			EdgeOpacity: 0.5,
			Outline:     "#ffffff",
			Highlight:   "#ff0000",
			LineWidth:   geomap3d.DefaultLineWidth,
		},
		Camera: CameraConfig{
			Fov:      45,
			Near:     0.1,
			Far:      1000,
			Position: []float64{0, 30, 150},
			Target:   []float64{0, 0, 0},
		},
		Controls: ControlsConfig{
			RotateSpeed: 0.35,
			ZoomSpeed:   1,
			MinDistance: 10,
			MaxDistance: 800,
		},
		Label: LabelConfig{
			Size: 14,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadEnv loads .env files into the environment. Missing files are ignored.
func LoadEnv(files ...string) {
	for _, f := range files {
		if err := godotenv.Load(f); err == nil {
			log.WithField("file", f).Debug("Loaded env file")
		}
	}
}

// Load reads a YAML config file. Environment variables in the file are expanded first.
// An empty path or a missing file gives the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.WithField("path", path).Info("No config file, using defaults")
			return Default(), nil
		}
		return nil, fmt.Errorf("config file read failed: %w", err)
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse overlays YAML onto the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config parse failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if len(c.Projection.Center) != 2 {
		return invalid("projection.center needs 2 values, got %d", len(c.Projection.Center))
	}
	if len(c.Projection.Translate) != 2 {
		return invalid("projection.translate needs 2 values, got %d", len(c.Projection.Translate))
	}
	if c.Projection.Scale <= 0 {
		return invalid("projection.scale must be positive")
	}
	if c.Extrude.Depth < 0 {
		return invalid("extrude.depth must not be negative")
	}
	for name, v := range map[string]float64{
		"style.fill_opacity": c.Style.FillOpacity,
		"style.edge_opacity": c.Style.EdgeOpacity,
	} {
		if v < 0 || v > 1 {
			return invalid("%s %v outside [0, 1]", name, v)
		}
	}
	for name, v := range map[string]string{
		"window.background": c.Window.Background,
		"style.fill":        c.Style.Fill,
		"style.edge":        c.Style.Edge,
		"style.outline":     c.Style.Outline,
		"style.highlight":   c.Style.Highlight,
	} {
		if _, err := ParseColor(v); err != nil {
			return invalid("%s: %v", name, err)
		}
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		return invalid("camera.fov %v", c.Camera.Fov)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return invalid("camera near %v far %v", c.Camera.Near, c.Camera.Far)
	}
	if len(c.Camera.Position) != 3 || len(c.Camera.Target) != 3 {
		return invalid("camera.position and camera.target need 3 values")
	}
	if c.Controls.MinDistance < 0 || c.Controls.MaxDistance < c.Controls.MinDistance {
		return invalid("controls distance range [%v, %v]", c.Controls.MinDistance, c.Controls.MaxDistance)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level: %v", err)
	}
	return nil
}

// ParseColor accepts "#rrggbb", "0xrrggbb" and SVG colour names.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	if len(hex) != 6 || hex == s {
		return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("unknown colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func mustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		// Validate rejects these before they get here.
		panic(err)
	}
	return c
}

func (c *Config) Background() color.RGBA {
	return mustColor(c.Window.Background)
}

func (c *Config) Highlight() color.RGBA {
	return mustColor(c.Style.Highlight)
}

// LabelFont returns label.font when set, otherwise the first of CJKFonts present on this
// machine. Empty means the built-in face, which cannot draw Chinese names.
func (c *Config) LabelFont() string {
	if c.Label.Font != "" {
		return c.Label.Font
	}
	for _, path := range CJKFonts {
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			log.WithField("font", path).Debug("Using system font for labels")
			return path
		}
	}
	return ""
}

// MapOptions builds the projection and style for the map loader.
func (c *Config) MapOptions() geomap3d.MapOptions {
	p := c.Projection
	return geomap3d.MapOptions{
		Projection: geomap3d.NewMercator(
			orb.Point{p.Center[0], p.Center[1]},
			p.Scale,
			[2]float64{p.Translate[0], p.Translate[1]},
		),
		Style: geomap3d.Style{
			Depth:       c.Extrude.Depth,
			Fill:        mustColor(c.Style.Fill),
			FillOpacity: c.Style.FillOpacity,
			Edge:        mustColor(c.Style.Edge),
			EdgeOpacity: c.Style.EdgeOpacity,
			Outline:     mustColor(c.Style.Outline),
		},
	}
}

// NewCamera returns the configured camera for a viewport of the given aspect ratio.
func (c *Config) NewCamera(aspect float64) *geomap3d.Camera {
	cc := c.Camera
	cam := geomap3d.NewCamera(cc.Fov, aspect, cc.Near, cc.Far)
	cam.SetPosition(cc.Position[0], cc.Position[1], cc.Position[2])
	cam.LookAt(cc.Target[0], cc.Target[1], cc.Target[2])
	return cam
}

// NewControls attaches orbit controls to cam.
func (c *Config) NewControls(cam *geomap3d.Camera) *geomap3d.OrbitControls {
	oc := geomap3d.NewOrbitControls(cam)
	oc.RotateSpeed = c.Controls.RotateSpeed
	oc.ZoomSpeed = c.Controls.ZoomSpeed
	oc.MinDistance = c.Controls.MinDistance
	oc.MaxDistance = c.Controls.MaxDistance
	return oc
}

// LogLevel returns the parsed level, info when it does not parse.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
