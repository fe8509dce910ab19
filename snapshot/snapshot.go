/*
Package snapshot serializes the flat topology wire bundle to a compact binary
form. The bundle is already relocatable - plain arrays plus counts - so the
format is little-endian sections behind a magic/version header, suitable for
copying a flattened mesh verbatim across a process boundary or to disk.
*/
package snapshot

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/notargets/gomesh/flatmesh"
	"github.com/notargets/gomesh/types"
	"github.com/notargets/gomesh/utils"
)

const (
	// MagicNumber marks a flat mesh snapshot file ("FMSH")
	MagicNumber uint32 = 0x464D5348

	// Version of the binary layout
	Version uint32 = 1
)

var byteOrder = binary.LittleEndian

type header struct {
	Magic   uint32
	Version uint32

	Dim           int32
	NumOwnedCells int64
	NumCells      int64
	NumOwnedFaces int64
	NumFaces      int64
	NumOwnedNodes int64
	NumNodes      int64
}

// Write serializes raw to w
func Write(w io.Writer, raw flatmesh.RawTopology) error {
	hdr := header{
		Magic:         MagicNumber,
		Version:       Version,
		Dim:           int32(raw.Dim),
		NumOwnedCells: int64(raw.NumOwnedCells),
		NumCells:      int64(raw.NumCells),
		NumOwnedFaces: int64(raw.NumOwnedFaces),
		NumFaces:      int64(raw.NumFaces),
		NumOwnedNodes: int64(raw.NumOwnedNodes),
		NumNodes:      int64(raw.NumNodes),
	}
	if err := binary.Write(w, byteOrder, hdr); err != nil {
		return fmt.Errorf("snapshot header: %w", err)
	}

	if err := writeFloat64s(w, raw.Coords); err != nil {
		return err
	}
	if err := writeAdjacency(w, raw.CellToNode); err != nil {
		return err
	}
	if err := writeAdjacency(w, raw.CellToFace); err != nil {
		return err
	}
	if err := writeBools(w, raw.CellFaceDirs); err != nil {
		return err
	}
	if err := writeAdjacency(w, raw.FaceToNode); err != nil {
		return err
	}
	if err := writeAdjacency(w, raw.NodeToCell); err != nil {
		return err
	}
	if err := writeGlobalIDs(w, raw.CellGlobalIDs); err != nil {
		return err
	}
	if err := writeGlobalIDs(w, raw.FaceGlobalIDs); err != nil {
		return err
	}
	return writeGlobalIDs(w, raw.NodeGlobalIDs)
}

// Read deserializes a wire bundle from r. The result is unvalidated; hand it
// to flatmesh.FromRaw to rederive and check topology.
func Read(r io.Reader) (raw flatmesh.RawTopology, err error) {
	var hdr header
	if err = binary.Read(r, byteOrder, &hdr); err != nil {
		return raw, fmt.Errorf("snapshot header: %w", err)
	}
	if hdr.Magic != MagicNumber {
		return raw, fmt.Errorf("bad magic 0x%08X", hdr.Magic)
	}
	if hdr.Version != Version {
		return raw, fmt.Errorf("unsupported snapshot version %d", hdr.Version)
	}

	raw.Dim = int(hdr.Dim)
	raw.NumOwnedCells, raw.NumCells = int(hdr.NumOwnedCells), int(hdr.NumCells)
	raw.NumOwnedFaces, raw.NumFaces = int(hdr.NumOwnedFaces), int(hdr.NumFaces)
	raw.NumOwnedNodes, raw.NumNodes = int(hdr.NumOwnedNodes), int(hdr.NumNodes)

	if raw.Coords, err = readFloat64s(r); err != nil {
		return
	}
	if raw.CellToNode, err = readAdjacency[types.NodeID](r); err != nil {
		return
	}
	if raw.CellToFace, err = readAdjacency[types.FaceID](r); err != nil {
		return
	}
	if raw.CellFaceDirs, err = readBools(r); err != nil {
		return
	}
	if raw.FaceToNode, err = readAdjacency[types.NodeID](r); err != nil {
		return
	}
	if raw.NodeToCell, err = readAdjacency[types.CellID](r); err != nil {
		return
	}
	if raw.CellGlobalIDs, err = readGlobalIDs(r); err != nil {
		return
	}
	if raw.FaceGlobalIDs, err = readGlobalIDs(r); err != nil {
		return
	}
	raw.NodeGlobalIDs, err = readGlobalIDs(r)
	return
}

// Save writes a snapshot file
func Save(path string, raw flatmesh.RawTopology) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err = Write(w, raw); err != nil {
		return
	}
	if err = w.Flush(); err != nil {
		return
	}
	return f.Sync()
}

// Load reads a snapshot file
func Load(path string) (raw flatmesh.RawTopology, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	return Read(bufio.NewReader(f))
}

// Slices are length-prefixed; length -1 distinguishes a nil slice (2D meshes
// carry no face global ids) from an empty one.

func writeLen(w io.Writer, n int, isNil bool) error {
	if isNil {
		n = -1
	}
	return binary.Write(w, byteOrder, int64(n))
}

func readLen(r io.Reader) (n int, isNil bool, err error) {
	var v int64
	if err = binary.Read(r, byteOrder, &v); err != nil {
		return
	}
	if v < -1 {
		err = fmt.Errorf("corrupt section length %d", v)
		return
	}
	if v == -1 {
		return 0, true, nil
	}
	return int(v), false, nil
}

func writeFloat64s(w io.Writer, vals []float64) error {
	if err := writeLen(w, len(vals), vals == nil); err != nil {
		return err
	}
	return binary.Write(w, byteOrder, vals)
}

func readFloat64s(r io.Reader) (vals []float64, err error) {
	n, isNil, err := readLen(r)
	if err != nil || isNil {
		return
	}
	vals = make([]float64, n)
	err = binary.Read(r, byteOrder, vals)
	return
}

func writeInts[E ~int](w io.Writer, vals []E) error {
	if err := writeLen(w, len(vals), vals == nil); err != nil {
		return err
	}
	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = int64(v)
	}
	return binary.Write(w, byteOrder, out)
}

func readInts[E ~int](r io.Reader) (vals []E, err error) {
	n, isNil, err := readLen(r)
	if err != nil || isNil {
		return
	}
	in := make([]int64, n)
	if err = binary.Read(r, byteOrder, in); err != nil {
		return
	}
	vals = make([]E, n)
	for i, v := range in {
		vals[i] = E(v)
	}
	return
}

func writeAdjacency[E ~int](w io.Writer, adj utils.Adjacency[E]) error {
	if err := writeInts(w, adj.Offsets); err != nil {
		return err
	}
	return writeInts(w, adj.Values)
}

func readAdjacency[E ~int](r io.Reader) (adj utils.Adjacency[E], err error) {
	if adj.Offsets, err = readInts[int](r); err != nil {
		return
	}
	adj.Values, err = readInts[E](r)
	return
}

func writeBools(w io.Writer, vals []bool) error {
	if err := writeLen(w, len(vals), vals == nil); err != nil {
		return err
	}
	out := make([]uint8, len(vals))
	for i, v := range vals {
		if v {
			out[i] = 1
		}
	}
	_, err := w.Write(out)
	return err
}

func readBools(r io.Reader) (vals []bool, err error) {
	n, isNil, err := readLen(r)
	if err != nil || isNil {
		return
	}
	in := make([]uint8, n)
	if _, err = io.ReadFull(r, in); err != nil {
		return
	}
	vals = make([]bool, n)
	for i, v := range in {
		vals[i] = v != 0
	}
	return
}

func writeGlobalIDs(w io.Writer, ids []types.GlobalID) error {
	if err := writeLen(w, len(ids), ids == nil); err != nil {
		return err
	}
	return binary.Write(w, byteOrder, ids)
}

func readGlobalIDs(r io.Reader) (ids []types.GlobalID, err error) {
	n, isNil, err := readLen(r)
	if err != nil || isNil {
		return
	}
	ids = make([]types.GlobalID, n)
	err = binary.Read(r, byteOrder, ids)
	return
}
