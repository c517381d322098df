package lumen

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/udhos/gwob"
)

// ObjFormat is the vertex richness a Wavefront OBJ file was decoded with. Its
// value is the attempt, 1 to 3, that succeeded.
type ObjFormat int

const (
	ObjTextured  ObjFormat = iota + 1 // position, normal, uv
	ObjNormals                        // position, normal
	ObjPositions                      // position only
)

// Attempt is the 1-based tier the loader succeeded on.
func (f ObjFormat) Attempt() int { return int(f) }

func (f ObjFormat) String() string {
	switch f {
	case ObjTextured:
		return "position+normal+uv"
	case ObjNormals:
		return "position+normal"
	case ObjPositions:
		return "position"
	default:
		return "unknown"
	}
}

var errObjInvalid = errors.New("invalid obj file")

// LoadObj reads a Wavefront OBJ file into a mesh drawn with shader.
func LoadObj(path string, shader Shader) (*Mesh, error) {
	mesh, _, err := LoadObjWithFormat(path, shader)
	return mesh, err
}

// LoadObjWithFormat tries the richest vertex format first and falls back to
// poorer ones; missing normals and uvs are zero. It fails with DecodeIo when
// the file cannot be read and DecodeFormat when no format fits. Polygons are
// fan-triangulated and negative indices count back from the latest element.
func LoadObjWithFormat(path string, shader Shader) (*Mesh, ObjFormat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, &DecodeError{Kind: DecodeIo, Path: path, Err: err}
	}

	obj, err := gwob.NewObjFromBuf(path, data, &gwob.ObjParserOptions{})
	if err != nil {
		return nil, 0, &DecodeError{Kind: DecodeFormat, Path: path, Err: errors.Join(errObjInvalid, err)}
	}

	var attemptErrs []error
	for _, format := range []ObjFormat{ObjTextured, ObjNormals, ObjPositions} {
		vertices, indices, err := selectObjVertices(obj, format)
		if err != nil {
			attemptErrs = append(attemptErrs, fmt.Errorf("%s: %w", format, err))
			continue
		}
		return &Mesh{Vertices: vertices, Indices: indices, Shader: shader}, format, nil
	}
	return nil, 0, &DecodeError{Kind: DecodeFormat, Path: path, Err: errors.Join(append([]error{errObjInvalid}, attemptErrs...)...)}
}

// selectObjVertices keeps the attributes format carries from the decoded
// interleaved buffer and zero-fills the rest. Vertices that end up identical
// are merged.
func selectObjVertices(obj *gwob.Obj, format ObjFormat) ([]Vertex, []uint32, error) {
	switch {
	case format == ObjTextured && !obj.TextCoordFound:
		return nil, nil, errors.New("texture coordinates required")
	case format != ObjPositions && !obj.NormCoordFound:
		return nil, nil, errors.New("normals required")
	}
	if len(obj.Indices) == 0 || len(obj.Indices)%3 != 0 {
		return nil, nil, fmt.Errorf("expected whole triangles, got %d indices", len(obj.Indices))
	}
	if obj.StrideSize <= 0 {
		return nil, nil, errors.New("empty vertex stride")
	}

	// gwob strides and offsets are in bytes.
	stride := obj.StrideSize / 4
	count := len(obj.Coord) / stride
	read := func(at, offset, n int) []float32 {
		base := at*stride + offset/4
		return obj.Coord[base : base+n]
	}

	var (
		vertices []Vertex
		indices  = make([]uint32, 0, len(obj.Indices))
		seen     = map[Vertex]uint32{}
	)
	for _, at := range obj.Indices {
		if at < 0 || at >= count {
			return nil, nil, fmt.Errorf("index %d out of range (%d vertices)", at, count)
		}
		var vert Vertex
		copy(vert.Position[:], read(at, obj.StrideOffsetPosition, 3))
		if format != ObjPositions {
			copy(vert.Normal[:], read(at, obj.StrideOffsetNormal, 3))
		}
		if format == ObjTextured {
			copy(vert.UV[:], read(at, obj.StrideOffsetTexture, 2))
		}
		if !finite(vert) {
			return nil, nil, fmt.Errorf("vertex %d is not finite", at)
		}

		if i, ok := seen[vert]; ok {
			indices = append(indices, i)
			continue
		}
		i := uint32(len(vertices))
		vertices = append(vertices, vert)
		seen[vert] = i
		indices = append(indices, i)
	}
	return vertices, indices, nil
}

func finite(v Vertex) bool {
	for _, f := range [...]float32{
		v.Position[0], v.Position[1], v.Position[2],
		v.Normal[0], v.Normal[1], v.Normal[2],
		v.UV[0], v.UV[1],
	} {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return false
		}
	}
	return true
}
