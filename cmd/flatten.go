/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"sort"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gomesh/InputParameters"
	"github.com/notargets/gomesh/auxmesh"
	"github.com/notargets/gomesh/flatmesh"
	"github.com/notargets/gomesh/mesh"
	"github.com/notargets/gomesh/partition"
	"github.com/notargets/gomesh/readfiles"
	"github.com/notargets/gomesh/snapshot"
	"github.com/notargets/gomesh/structured"
	"github.com/notargets/gomesh/trimesh"
)

type ModelFlatten struct {
	GridFile   string
	InputFile  string
	Output     string
	Plot       bool
	PlotPoints bool
	Profile    bool
}

// FlattenCmd represents the flatten command
var FlattenCmd = &cobra.Command{
	Use:   "flatten",
	Short: "Flatten a mesh into offset indexed adjacency arrays, able to read grid files and output wire bundles",
	Long:  `Flatten a mesh into offset indexed adjacency arrays, able to read grid files and output wire bundles`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("flatten called")
		mf := &ModelFlatten{}
		if mf.GridFile, err = cmd.Flags().GetString("gridFile"); err != nil {
			panic(err)
		}
		if mf.InputFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			panic(err)
		}
		mf.Output, _ = cmd.Flags().GetString("output")
		mf.Plot, _ = cmd.Flags().GetBool("graph")
		mf.PlotPoints, _ = cmd.Flags().GetBool("points")
		mf.Profile, _ = cmd.Flags().GetBool("profile")
		fp := processFlattenInput(mf)
		RunFlatten(mf, fp)
	},
}

func processFlattenInput(mf *ModelFlatten) (fp *InputParameters.FlattenParameters) {
	var (
		err error
	)
	fp = &InputParameters.FlattenParameters{}
	if len(mf.InputFile) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(mf.InputFile); err != nil {
			panic(err)
		}
		if err = fp.Parse(data); err != nil {
			panic(err)
		}
	}
	if len(mf.GridFile) != 0 {
		fp.GridFile = mf.GridFile
	}
	if len(fp.GridFile) == 0 && len(fp.Generator) == 0 {
		err := fmt.Errorf("must supply a grid file (-F, --gridFile) in SU2 format, or a generator in the parameters file (-I)")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Uniform Grid"
Generator: uniform # Can be "delaunay"
Dimension: 2
CellsPerAxis: 8
Extent: [0., 1.]
NumPartitions: 4
Strategy: block # Can be "round-robin"
SnapshotFile: grid.fmsh
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	return
}

func init() {
	rootCmd.AddCommand(FlattenCmd)
	FlattenCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in SU2 (.su2) format")
	FlattenCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n\t- Generator\n\t- NumPartitions")
	FlattenCmd.Flags().StringP("output", "o", "", "file to write the flattened wire bundle to")
	FlattenCmd.Flags().BoolP("graph", "g", false, "display the flattened mesh")
	FlattenCmd.Flags().BoolP("points", "p", false, "include mesh points in the display")
	FlattenCmd.Flags().Bool("profile", false, "write a CPU profile of the flatten run")
}

func RunFlatten(mf *ModelFlatten, fp *InputParameters.FlattenParameters) {
	var (
		err error
	)
	if mf.Profile {
		defer profile.Start().Stop()
	}
	src, bcEdges := buildSource(fp)
	fm, err := flatmesh.New(src)
	if err != nil {
		panic(err)
	}
	printStats(fm)
	for _, line := range markerSummary(bcEdges, fp.Markers) {
		fmt.Println(line)
	}

	output := mf.Output
	if len(output) == 0 {
		output = fp.SnapshotFile
	}
	if fp.NumPartitions > 1 {
		layout, err := partition.Split(fm, fp.NumPartitions, parseStrategy(fp.Strategy))
		if err != nil {
			panic(err)
		}
		stats := layout.Statistics()
		fmt.Printf("%d partitions, %d to %d cells each, imbalance %5.3f\n",
			stats.NumParts, stats.MinCells, stats.MaxCells, stats.Imbalance)
		if len(output) != 0 {
			for _, pc := range layout.Pieces {
				path := fmt.Sprintf("%s.part%d", output, pc.Part)
				if err = snapshot.Save(path, pc.Raw); err != nil {
					panic(err)
				}
				fmt.Printf("wrote %s\n", path)
			}
		}
	} else if len(output) != 0 {
		if err = snapshot.Save(output, fm.Raw()); err != nil {
			panic(err)
		}
		fmt.Printf("wrote %s\n", output)
	}

	if mf.Plot {
		readfiles.PlotMesh(fm, mf.PlotPoints)
		fmt.Println("press enter to exit")
		_, _ = fmt.Scanln()
	}
}

func buildSource(fp *InputParameters.FlattenParameters) (src mesh.Mesh, bcEdges map[string][][2]int) {
	var (
		err error
	)
	switch fp.Generator {
	case "uniform":
		if src, err = structured.NewUniform(fp.Dimension, fp.CellsPerAxis, fp.Extent[0], fp.Extent[1]); err != nil {
			panic(err)
		}
	case "delaunay":
		if src, err = trimesh.NewDelaunay(gridPoints(fp)); err != nil {
			panic(err)
		}
	case "":
		src, bcEdges = readfiles.ReadSU2(fp.GridFile, true)
	default:
		panic(fmt.Errorf("unknown generator [%s]", fp.Generator))
	}
	return
}

// markerSummary pairs the boundary marker edge counts read from the grid
// file with the per-marker attributes given in the input parameters
func markerSummary(bcEdges map[string][][2]int, attrs map[string]float64) (lines []string) {
	keys := make([]string, 0, len(bcEdges))
	for key := range bcEdges {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		line := fmt.Sprintf("marker %-16s %6d edges", key, len(bcEdges[key]))
		if attr, ok := attrs[key]; ok {
			line += fmt.Sprintf(", attribute %8.4f", attr)
		}
		lines = append(lines, line)
	}
	return
}

// gridPoints lays out a regular lattice over the extent for triangulation
func gridPoints(fp *InputParameters.FlattenParameters) (points [][2]float64) {
	n := fp.CellsPerAxis + 1
	if n < 2 {
		n = 2
	}
	h := (fp.Extent[1] - fp.Extent[0]) / float64(n-1)
	points = make([][2]float64, 0, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			points = append(points, [2]float64{
				fp.Extent[0] + float64(i)*h,
				fp.Extent[0] + float64(j)*h,
			})
		}
	}
	return
}

func parseStrategy(label string) partition.Strategy {
	switch label {
	case "round-robin":
		return partition.RoundRobin
	case "block", "":
		return partition.Block
	default:
		panic(fmt.Errorf("unknown partition strategy [%s]", label))
	}
}

func printStats(fm *flatmesh.Mesh) {
	var (
		raw = fm.Raw()
	)
	fmt.Printf("%d dimensional mesh\n", raw.Dim)
	fmt.Printf("%8d cells (%d owned)\n", raw.NumCells, raw.NumOwnedCells)
	fmt.Printf("%8d faces (%d owned)\n", raw.NumFaces, raw.NumOwnedFaces)
	fmt.Printf("%8d nodes (%d owned)\n", raw.NumNodes, raw.NumOwnedNodes)
	at, err := auxmesh.New(fm)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%8d boundary faces\n", len(at.BoundaryFaces()))
	if bb, err := at.BoundingBox(); err == nil {
		fmt.Printf("bounding box %v to %v\n", bb.Min, bb.Max)
	}
}
