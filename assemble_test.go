package geomap3d

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testMapFile = "testdata/provinces.json"

func TestLoadMapFile(t *testing.T) {
	m, err := LoadMapFile(context.Background(), testMapFile, DefaultMapOptions())
	if err != nil {
		t.Fatalf("LoadMapFile error: %v", err)
	}
	if m.Name != MapName {
		t.Errorf("map name = %q", m.Name)
	}

	want := []struct {
		name  string
		rings int
	}{
		{"甲省", 2},
		{"乙省", 1},
		{"", 1},
	}
	if len(m.Children()) != len(want) {
		t.Fatalf("got %d provinces, want %d", len(m.Children()), len(want))
	}
	for i, w := range want {
		province := m.Children()[i].(*Group)
		if province.Name != w.name {
			t.Errorf("province %d name = %q, want %q", i, province.Name, w.name)
		}
		meshes, lines := CountMeshes(province)
		if meshes != w.rings || lines != w.rings {
			t.Errorf("province %q: %d meshes %d lines, want %d", w.name, meshes, lines, w.rings)
		}
	}
}

func TestLoadMapErrors(t *testing.T) {
	testCases := []struct {
		name string
		load func() error
		want error
	}{
		{
			name: "missing file",
			load: func() error {
				_, err := LoadMapFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"), DefaultMapOptions())
				return err
			},
			want: ErrLoadData,
		},
		{
			name: "not json",
			load: func() error {
				_, err := LoadMap(context.Background(), strings.NewReader("<html>"), DefaultMapOptions())
				return err
			},
			want: ErrDecodeData,
		},
		{
			name: "cancelled",
			load: func() error {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				f, err := os.Open(testMapFile)
				if err != nil {
					return err
				}
				defer f.Close()
				_, err = LoadMap(ctx, f, DefaultMapOptions())
				return err
			},
			want: context.Canceled,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.load(); !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestAssembleAsync(t *testing.T) {
	results := AssembleAsync(context.Background(), func(ctx context.Context) (*Group, error) {
		return LoadMapFile(ctx, testMapFile, DefaultMapOptions())
	})

	select {
	case res := <-results:
		if res.Err != nil || res.Map == nil {
			t.Fatalf("result = %+v", res)
		}
		if len(res.Map.Children()) != 3 {
			t.Errorf("got %d provinces", len(res.Map.Children()))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no map result")
	}

	if _, ok := <-results; ok {
		t.Error("results channel delivered more than one result")
	}
}

func TestAssembleAsyncFailure(t *testing.T) {
	results := AssembleAsync(context.Background(), func(ctx context.Context) (*Group, error) {
		return nil, ErrLoadData
	})
	res := <-results
	if !errors.Is(res.Err, ErrLoadData) || res.Map != nil {
		t.Errorf("result = %+v, want ErrLoadData", res)
	}
}
