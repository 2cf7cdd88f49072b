package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smasonuk/geomap3d"
	"github.com/smasonuk/geomap3d/internal/feed"
	"github.com/smasonuk/geomap3d/render"
)

var (
	dataPath string
	feedAddr string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the map window",
	RunE: func(cmd *cobra.Command, args []string) error {
		if dataPath != "" {
			cfg.Data.Path = dataPath
		}
		if feedAddr != "" {
			cfg.Feed.Addr = feedAddr
		}
		return runMap(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVar(&dataPath, "data", "", "GeoJSON FeatureCollection, overrides data.path")
	runCmd.Flags().StringVar(&feedAddr, "feed", "", "address for the pick feed, overrides feed.addr")
}

func runMap(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("Initializing World...")
	vp := geomap3d.NewViewport(cfg.Window.Width, cfg.Window.Height)
	cam := cfg.NewCamera(vp.Aspect())
	world := geomap3d.NewWorld()
	world.SetCamera(cam)
	world.Painter().LineWidth = float32(cfg.Style.LineWidth)

	label := &geomap3d.Label{}
	picker := geomap3d.NewPicker(label, cfg.Highlight())
	picker.OnChange(func(ev geomap3d.PickEvent) {
		log.WithFields(log.Fields{"name": ev.Name, "picked": ev.Picked}).Debug("Pick changed")
	})

	face, err := render.LoadFace(cfg.LabelFont(), cfg.Label.Size)
	if err != nil {
		log.WithError(err).Warn("Falling back to the default label font")
		if face, err = render.LoadFace("", cfg.Label.Size); err != nil {
			return err
		}
	}

	mapOpts := cfg.MapOptions()
	path := cfg.Data.Path
	log.WithField("path", path).Info("Loading map...")
	results := geomap3d.AssembleAsync(ctx, func(ctx context.Context) (*geomap3d.Group, error) {
		return geomap3d.LoadMapFile(ctx, path, mapOpts)
	})

	opts := render.Options{
		World:      world,
		Viewport:   vp,
		Controls:   cfg.NewControls(cam),
		Picker:     picker,
		Label:      label,
		Face:       face,
		Background: cfg.Background(),
		ShowFPS:    cfg.Window.ShowFPS,
		MapResults: results,
	}

	if cfg.Feed.Addr != "" {
		hub := feed.NewHub()
		metrics := feed.NewMetrics()
		picker.OnChange(hub.Publish)
		picker.OnChange(metrics.ObservePick)
		opts.OnMap = metrics.ObserveMap
		opts.OnFrame = metrics.ObserveFrame

		server := feed.NewServer(cfg.Feed.Addr, hub, metrics)
		go func() {
			if err := server.Run(ctx); err != nil {
				log.WithError(err).Error("Pick feed stopped")
			}
		}()
	}

	log.Println("Initialization Complete.")
	return render.Run(render.NewGame(opts), cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
}
