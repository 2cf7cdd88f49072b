package geomap3d

import "errors"

var (
	// ErrLoadData is returned when the map data cannot be read.
	ErrLoadData = errors.New("map data could not be loaded")
	// ErrDecodeData is returned when the map data is not a GeoJSON FeatureCollection.
	ErrDecodeData = errors.New("map data is not a feature collection")
)
