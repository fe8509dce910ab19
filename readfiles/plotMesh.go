package readfiles

import (
	"image/color"

	"github.com/notargets/avs/chart2d"
	graphics2D "github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"
	"github.com/notargets/gomesh/flatmesh"
)

// PlotMesh renders a flattened triangular mesh. It panics on non-2D meshes
// and on cells that are not triangles, matching the reader's restrictions.
func PlotMesh(fm *flatmesh.Mesh, plotPoints bool) (chart *chart2d.Chart2D) {
	var (
		raw     = fm.Raw()
		points  []graphics2D.Point
		trimesh graphics2D.TriMesh
	)
	if raw.Dim != 2 {
		panic("only 2D meshes can be plotted")
	}
	points = make([]graphics2D.Point, raw.NumNodes)
	xs := make([]float64, raw.NumNodes)
	ys := make([]float64, raw.NumNodes)
	for i := range points {
		xs[i], ys[i] = raw.Coords[2*i], raw.Coords[2*i+1]
		points[i].X[0] = float32(xs[i])
		points[i].X[1] = float32(ys[i])
	}
	trimesh.Triangles = make([]graphics2D.Triangle, raw.NumCells)
	colorMap := utils2.NewColorMap(0, 1, 1)
	trimesh.Attributes = make([][]float32, raw.NumCells) // One attribute per edge
	for k := 0; k < raw.NumCells; k++ {
		nodes := raw.CellToNode.Row(k)
		if len(nodes) != 3 {
			panic("unable to plot non-triangular elements right now")
		}
		trimesh.Attributes[k] = make([]float32, 3)
		for i := 0; i < 3; i++ {
			trimesh.Triangles[k].Nodes[i] = int32(nodes[i])
		}
	}
	trimesh.Geometry = points
	box := graphics2D.NewBoundingBox(trimesh.GetGeometry())
	box = box.Scale(1.5)
	chart = chart2d.NewChart2D(1920, 1920, box.XMin[0], box.XMax[0], box.XMin[1], box.XMax[1])
	chart.AddColorMap(colorMap)
	go chart.Plot()
	white := color.RGBA{
		R: 255,
		G: 255,
		B: 255,
		A: 0,
	}
	black := color.RGBA{
		R: 0,
		G: 0,
		B: 0,
		A: 0,
	}
	if err := chart.AddTriMesh("TriMesh", trimesh,
		chart2d.CrossGlyph, chart2d.Solid, white); err != nil {
		panic("unable to add graph series")
	}
	var ptsGlyph chart2d.GlyphType
	ptsGlyph = chart2d.NoGlyph
	if plotPoints {
		ptsGlyph = chart2d.CircleGlyph
	}
	if err := chart.AddSeries("Nodes", xs, ys,
		ptsGlyph, chart2d.NoLine, black); err != nil {
		panic(err)
	}

	return
}
