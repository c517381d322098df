package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/lumen"
)

type pipelineKey struct {
	depthTest  lumen.DepthTest
	depthWrite bool
	cull       lumen.CullMode
}

// defaultPipeline is the state every mesh draw uses. It is linked when the
// program is created so entry point and layout mismatches surface there.
var defaultPipeline = pipelineKey{depthTest: lumen.DepthTestLess, depthWrite: true, cull: lumen.CullBack}

// pipelineError reports a pipeline that failed to link while drawing.
func pipelineError(label string, err error) error {
	return &lumen.AssetCreationError{Kind: lumen.AssetProgram, Label: label, Err: err}
}

// program is a shader module plus the pipelines built from it, one per
// fixed-function state combination it has been drawn with.
type program struct {
	backend   *Backend
	label     string
	module    *wgpu.ShaderModule
	pipelines map[pipelineKey]*wgpu.RenderPipeline
}

func (p *program) pipeline(key pipelineKey) (*wgpu.RenderPipeline, error) {
	if pipeline, ok := p.pipelines[key]; ok {
		return pipeline, nil
	}

	compare := wgpu.CompareFunctionAlways
	if key.depthTest == lumen.DepthTestLess {
		compare = wgpu.CompareFunctionLess
	}
	cull := wgpu.CullModeNone
	if key.cull == lumen.CullBack {
		cull = wgpu.CullModeBack
	}
	stencil := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}

	pipeline, err := p.backend.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: p.label,
		Vertex: wgpu.VertexState{
			Module:     p.module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     p.module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: p.backend.config.Format,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  cull,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: key.depthWrite,
			DepthCompare:      compare,
			StencilFront:      stencil,
			StencilBack:       stencil,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline %s: %w", p.label, err)
	}
	p.pipelines[key] = pipeline
	p.backend.logger.Debugf("gpu: pipeline %s built %+v", p.label, key)
	return pipeline, nil
}

func (p *program) Release() {
	for key, pipeline := range p.pipelines {
		pipeline.Release()
		delete(p.pipelines, key)
	}
	if p.module != nil {
		p.module.Release()
		p.module = nil
	}
}
