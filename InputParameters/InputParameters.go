package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type FlattenParameters struct {
	Title         string             `yaml:"Title"`
	GridFile      string             `yaml:"GridFile"`      // SU2 grid, used when no generator is set
	Generator     string             `yaml:"Generator"`     // "uniform" or "delaunay"
	Dimension     int                `yaml:"Dimension"`     // 2 or 3, uniform generator only
	CellsPerAxis  int                `yaml:"CellsPerAxis"`  // uniform generator only
	Extent        [2]float64         `yaml:"Extent"`        // axis range, uniform generator only
	NumPartitions int                `yaml:"NumPartitions"` // 0 or 1 disables splitting
	Strategy      string             `yaml:"Strategy"`      // "block" or "round-robin"
	SnapshotFile  string             `yaml:"SnapshotFile"`  // where the wire bundle is written
	Markers       map[string]float64 `yaml:"Markers"`       // attributes reported per SU2 boundary marker
}

func (fp *FlattenParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, fp)
}

func (fp *FlattenParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", fp.Title)
	fmt.Printf("[%s]\t\t= GridFile\n", fp.GridFile)
	fmt.Printf("[%s]\t\t= Generator\n", fp.Generator)
	fmt.Printf("[%d]\t\t\t\t= Dimension\n", fp.Dimension)
	fmt.Printf("[%d]\t\t\t\t= CellsPerAxis\n", fp.CellsPerAxis)
	fmt.Printf("[%d]\t\t\t\t= NumPartitions\n", fp.NumPartitions)
	fmt.Printf("[%s]\t\t= Strategy\n", fp.Strategy)
	keys := make([]string, len(fp.Markers))
	i := 0
	for k := range fp.Markers {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Markers[%s] = %v\n", key, fp.Markers[key])
	}
}
