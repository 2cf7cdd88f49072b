package geomap3d

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/paulmach/orb/geojson"
	log "github.com/sirupsen/logrus"
)

// MapName is the name of the group holding every province.
const MapName = "map"

type MapOptions struct {
	Projection Projector
	Style      Style
}

func DefaultMapOptions() MapOptions {
	return MapOptions{
		Projection: NewDefaultMercator(),
		Style:      DefaultStyle(),
	}
}

// MapResult is what an asynchronous load delivers: the map or the reason there is none.
type MapResult struct {
	Map     *Group
	Err     error
	Elapsed time.Duration
}

// LoadMapFile reads a GeoJSON FeatureCollection from path and builds the map.
func LoadMapFile(ctx context.Context, path string, opts MapOptions) (*Group, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadData, err)
	}
	defer file.Close()

	return LoadMap(ctx, file, opts)
}

// LoadMap decodes a FeatureCollection and builds one province group per feature, in
// feature order.
func LoadMap(ctx context.Context, r io.Reader, opts MapOptions) (*Group, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadData, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeData, err)
	}

	return BuildMap(ctx, fc, opts)
}

// BuildMap builds the province groups of an already decoded collection.
func BuildMap(ctx context.Context, fc *geojson.FeatureCollection, opts MapOptions) (*Group, error) {
	if opts.Projection == nil {
		opts.Projection = NewDefaultMercator()
	}

	log.WithField("features", len(fc.Features)).Info("Building province meshes...")
	mapGroup := NewGroup(MapName)
	for i, f := range fc.Features {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("building province %d: %w", i, err)
		}
		province := BuildProvince(f, opts.Projection, opts.Style)
		meshes, _ := CountMeshes(province)
		log.WithFields(log.Fields{
			"province": province.Name,
			"rings":    meshes,
		}).Debug("Province built")
		mapGroup.Add(province)
	}
	log.Info("Map assembled.")
	return mapGroup, nil
}

// AssembleAsync runs load on its own goroutine. The returned channel yields exactly one
// result and is then closed.
func AssembleAsync(ctx context.Context, load func(context.Context) (*Group, error)) <-chan MapResult {
	results := make(chan MapResult, 1)
	go func() {
		defer close(results)
		start := time.Now()
		m, err := load(ctx)
		if err != nil {
			log.WithError(err).Error("Map load failed")
		}
		results <- MapResult{Map: m, Err: err, Elapsed: time.Since(start)}
	}()
	return results
}
