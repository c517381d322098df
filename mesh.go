package lumen

// Vertex is the single vertex layout every shader consumes. The tags give the
// shader location and format of each attribute.
type Vertex struct {
	Position [3]float32 `lumen:"layout" format:"float3" location:"0"`
	Normal   [3]float32 `lumen:"layout" format:"float3" location:"1"`
	UV       [2]float32 `lumen:"layout" format:"float2" location:"2"`
}

// Mesh is immutable triangle-list geometry drawn with one shader. The mesh
// owns its shader.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Shader   Shader
}

// Cube returns a cube spanning -1..1 on every axis. Normals and UVs are zero.
func Cube(shader Shader) *Mesh {
	return &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{-1, -1, -1}},
			{Position: [3]float32{-1, -1, 1}},
			{Position: [3]float32{-1, 1, -1}},
			{Position: [3]float32{-1, 1, 1}},
			{Position: [3]float32{1, -1, -1}},
			{Position: [3]float32{1, -1, 1}},
			{Position: [3]float32{1, 1, -1}},
			{Position: [3]float32{1, 1, 1}},
		},
		Indices: []uint32{
			0, 2, 3,
			0, 3, 1,
			0, 4, 6,
			0, 6, 2,
			0, 1, 5,
			0, 5, 4,
			1, 3, 7,
			1, 7, 5,
			3, 2, 6,
			3, 6, 7,
			4, 5, 7,
			4, 7, 6,
		},
		Shader: shader,
	}
}

// Plane returns a square spanning -1..1 in X and Y at z=0, front face towards
// -Z where a camera looking down +Z sees it. A double-sided plane repeats the
// triangles with reversed winding.
func Plane(doubleSided bool, shader Shader) *Mesh {
	indices := []uint32{
		0, 1, 2,
		2, 1, 3,
	}
	if doubleSided {
		indices = append(indices,
			0, 2, 1,
			2, 3, 1,
		)
	}
	return &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{-1, 1, 0}, UV: [2]float32{0, 1}},
			{Position: [3]float32{1, 1, 0}, UV: [2]float32{1, 1}},
			{Position: [3]float32{-1, -1, 0}, UV: [2]float32{0, 0}},
			{Position: [3]float32{1, -1, 0}, UV: [2]float32{1, 0}},
		},
		Indices: indices,
		Shader:  shader,
	}
}

// Release frees the shader's GPU resources.
func (m *Mesh) Release() {
	if m.Shader != nil {
		m.Shader.Release()
	}
}
