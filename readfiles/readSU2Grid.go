package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notargets/gomesh/trimesh"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_LINE          SU2ElementType = 3
	ELType_Triangle                     = 5
	ELType_Quadrilateral                = 9
	ELType_Tetrahedral                  = 10
	ELType_Hexahedral                   = 12
	ELType_Prism                        = 13
	ELType_Pyramid                      = 14
)

func ReadSU2(filename string, verbose bool) (tm *trimesh.Mesh, bcEdges map[string][][2]int) {
	var (
		file   *os.File
		err    error
		reader *bufio.Reader
	)
	if verbose {
		fmt.Printf("Reading SU2 file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		panic(fmt.Errorf("unable to open file %s\n %s", filename, err))
	}
	defer file.Close()
	reader = bufio.NewReader(file)

	dimensionality := readNumber(reader)
	if dimensionality != 2 {
		panic(fmt.Errorf("unable to read %d dimensional grids, only 2D", dimensionality))
	}
	etov := readElements(reader)
	points := readVertices(reader)
	bcEdges = readBCs(reader)
	if verbose {
		fmt.Printf("Read %d elements, %d vertices, %d boundary markers\n",
			len(etov), len(points), len(bcEdges))
	}

	if tm, err = trimesh.New(points, etov); err != nil {
		panic(err)
	}
	return
}

func readElements(reader *bufio.Reader) (etov [][3]int) {
	var (
		n          int
		nType      int
		v1, v2, v3 int
		err        error
	)
	K := readNumber(reader)
	etov = make([][3]int, K)
	for k := 0; k < K; k++ {
		line := getLine(reader)
		if n, err = fmt.Sscanf(line, "%d %d %d %d", &nType, &v1, &v2, &v3); err != nil {
			panic(err)
		}
		if n != 4 {
			panic("unable to read vertices")
		}
		if SU2ElementType(nType) != ELType_Triangle {
			panic("unable to deal with non-triangular elements right now")
		}
		etov[k] = [3]int{v1, v2, v3}
	}
	return
}

func readVertices(reader *bufio.Reader) (points [][2]float64) {
	var (
		n    int
		x, y float64
		err  error
	)
	Nv := readNumber(reader)
	points = make([][2]float64, Nv)
	for i := 0; i < Nv; i++ {
		line := getLine(reader)
		if n, err = fmt.Sscanf(line, "%f %f", &x, &y); err != nil {
			panic(err)
		}
		if n != 2 {
			panic("unable to read coordinates")
		}
		points[i] = [2]float64{x, y}
	}
	return
}

func readBCs(reader *bufio.Reader) (bcEdges map[string][][2]int) {
	var (
		nType  int
		v1, v2 int
		err    error
	)
	NBCs := readNumber(reader)
	bcEdges = make(map[string][][2]int, NBCs)
	for n := 0; n < NBCs; n++ {
		label := readLabel(reader)
		nEdges := readNumber(reader)
		// Duplicate tagged markers append to a common slice. Periodic BCs
		// come in pairs, so a repeated tag ends up with nEdges x 2 edges.
		edges := bcEdges[label]
		for i := 0; i < nEdges; i++ {
			line := getLine(reader)
			if _, err = fmt.Sscanf(line, "%d %d %d", &nType, &v1, &v2); err != nil {
				panic(err)
			}
			if SU2ElementType(nType) != ELType_LINE {
				panic("BCs should only contain line elements in 2D")
			}
			edges = append(edges, [2]int{v1, v2})
		}
		bcEdges[label] = edges
	}
	return
}

func getToken(reader *bufio.Reader) (token string) {
	var (
		line string
		err  error
	)
	line = getLineNoComments(reader)
	ind := strings.Index(line, "=")
	if ind < 0 {
		err = fmt.Errorf("badly formed input line [%s], should have an =", line)
		panic(err)
	}
	token = line[ind+1:]
	return
}

func readLabel(reader *bufio.Reader) (label string) {
	var (
		err error
	)
	token := getToken(reader)
	if _, err = fmt.Sscanf(token, "%s", &label); err != nil {
		err = fmt.Errorf("unable to read label from token: [%s]", token)
		panic(err)
	}
	label = strings.Trim(label, " ")
	return
}

func readNumber(reader *bufio.Reader) (num int) {
	var (
		err error
	)
	token := getToken(reader)
	if _, err = fmt.Sscanf(token, "%d", &num); err != nil {
		err = fmt.Errorf("unable to read number from token: [%s]", token)
		panic(err)
	}
	return
}

func getLineNoComments(reader *bufio.Reader) (line string) {
	for {
		line = strings.Trim(getLine(reader), " ")
		ind := strings.Index(line, "%")
		if ind < 0 || ind != 0 {
			return
		}
	}
}

func getLine(reader *bufio.Reader) (line string) {
	var (
		err error
	)
	line, err = reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			err = fmt.Errorf("early end of file")
		}
		panic(err)
	}
	line = line[:len(line)-1] // Strip away the newline
	return
}

func skipLines(n int, reader *bufio.Reader) {
	for i := 0; i < n; i++ {
		getLine(reader)
	}
}
