package gpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/lumen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVertexBufferLayout_Vertex(t *testing.T) {
	layout, err := createVertexBufferLayout(lumen.Vertex{})
	require.NoError(t, err)

	assert.Equal(t, uint64(32), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layout.StepMode)
	require.Len(t, layout.Attributes, 3)

	assert.Equal(t, wgpu.VertexAttribute{ShaderLocation: 0, Offset: 0, Format: wgpu.VertexFormatFloat32x3}, layout.Attributes[0])
	assert.Equal(t, wgpu.VertexAttribute{ShaderLocation: 1, Offset: 12, Format: wgpu.VertexFormatFloat32x3}, layout.Attributes[1])
	assert.Equal(t, wgpu.VertexAttribute{ShaderLocation: 2, Offset: 24, Format: wgpu.VertexFormatFloat32x2}, layout.Attributes[2])
}

func TestCreateVertexBufferLayout_UntaggedFieldsAdvanceOffset(t *testing.T) {
	type padded struct {
		Position [3]float32 `lumen:"layout" format:"float3" location:"0"`
		Pad      float32
		Colour   [4]float32 `lumen:"layout" format:"float4" location:"1"`
	}
	layout, err := createVertexBufferLayout(padded{})
	require.NoError(t, err)

	assert.Equal(t, uint64(32), layout.ArrayStride)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, uint64(16), layout.Attributes[1].Offset)
}

func TestCreateVertexBufferLayout_Errors(t *testing.T) {
	type badFormat struct {
		Value [3]int32 `lumen:"layout" format:"int3" location:"0"`
	}
	_, err := createVertexBufferLayout(badFormat{})
	assert.ErrorContains(t, err, "int3")

	type badLocation struct {
		Value [2]float32 `lumen:"layout" format:"float2" location:"first"`
	}
	_, err = createVertexBufferLayout(badLocation{})
	assert.ErrorContains(t, err, "location")

	_, err = createVertexBufferLayout(42)
	assert.Error(t, err)
}
