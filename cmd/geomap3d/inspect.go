package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smasonuk/geomap3d"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Load a map and print what was built for each province",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Data.Path
		if len(args) == 1 {
			path = args[0]
		}
		m, err := geomap3d.LoadMapFile(cmd.Context(), path, cfg.MapOptions())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PROVINCE\tRINGS\tFACES\tVERTICES")
		var totalRings, totalFaces, totalVertices int
		for _, child := range m.Children() {
			province, ok := child.(*geomap3d.Group)
			if !ok {
				continue
			}
			rings, faces, vertices := 0, 0, 0
			for _, o := range province.Children() {
				if mesh, ok := o.(*geomap3d.Mesh); ok {
					rings++
					faces += mesh.FaceCount()
					vertices += mesh.VertexCount()
				}
			}
			totalRings += rings
			totalFaces += faces
			totalVertices += vertices
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", province.Name, rings, faces, vertices)
		}
		fmt.Fprintf(w, "total (%d provinces)\t%d\t%d\t%d\n", len(m.Children()), totalRings, totalFaces, totalVertices)
		return w.Flush()
	},
}
