package main

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/smasonuk/geomap3d"
)

func TestRootReportsErrorsOnce(t *testing.T) {
	dir := t.TempDir()
	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetOut(io.Discard)
	rootCmd.SetArgs([]string{
		"--config", filepath.Join(dir, "absent.yml"),
		"inspect", filepath.Join(dir, "missing.json"),
	})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetOut(nil)
	})

	err := rootCmd.Execute()
	if !errors.Is(err, geomap3d.ErrLoadData) {
		t.Fatalf("Execute() error = %v, want ErrLoadData", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("cobra printed %q, the error is logged by Execute", stderr.String())
	}
}
