package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-sentinel/engine/renderer/raster"
	"github.com/cogentcore/webgpu/wgpu"
)

// blitShader draws one fullscreen triangle sampling the uploaded frame.
const blitShader = `
@group(0) @binding(0) var frameTex: texture_2d<f32>;
@group(0) @binding(1) var frameSampler: sampler;

struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> VertexOut {
    var corners = array<vec2<f32>, 3>(
        vec2<f32>(-1.0, -1.0),
        vec2<f32>(3.0, -1.0),
        vec2<f32>(-1.0, 3.0),
    );
    let xy = corners[index];
    var out: VertexOut;
    out.position = vec4<f32>(xy, 0.0, 1.0);
    out.uv = vec2<f32>((xy.x + 1.0) * 0.5, (1.0 - xy.y) * 0.5);
    return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    return textureSample(frameTex, frameSampler, in.uv);
}
`

type wgpuPresenter struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	alphaMode     wgpu.CompositeAlphaMode
	presentMode   wgpu.PresentMode

	layout   *wgpu.BindGroupLayout
	pipeline *wgpu.RenderPipeline
	sampler  *wgpu.Sampler

	// Frame texture, recreated when the frame buffer size changes.
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	bindGroup *wgpu.BindGroup
	texWidth  int
	texHeight int
}

var _ Presenter = &wgpuPresenter{}

// NewWGPUPresenter creates a Presenter drawing to the surface described by desc.
// Every failure is returned so the caller can fall back to headless operation.
//
// Parameters:
//   - desc: the platform surface descriptor from the window
//   - width: initial surface width in pixels
//   - height: initial surface height in pixels
//   - mode: the present mode
//
// Returns:
//   - Presenter: the presenter
//   - error: error if any GPU object could not be created
func NewWGPUPresenter(desc *wgpu.SurfaceDescriptor, width, height int, mode PresentMode) (p Presenter, err error) {
	if desc == nil {
		return nil, errors.New("renderer: no surface descriptor")
	}
	// wgpu-native aborts through panics on some driver failures.
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("renderer: presenter init panicked: %v", r)
		}
	}()

	w := &wgpuPresenter{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
	}
	if mode == PresentModeVSync {
		w.presentMode = wgpu.PresentModeFifo
	}

	w.surface = w.instance.CreateSurface(desc)
	if w.surface == nil {
		w.Release()
		return nil, errors.New("renderer: surface creation failed")
	}

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: w.surface,
	})
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("renderer: request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Presenter Device",
	})
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("renderer: request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	capabilities := w.surface.GetCapabilities(w.adapter)
	if len(capabilities.Formats) == 0 {
		w.Release()
		return nil, errors.New("renderer: surface reports no formats")
	}
	w.surfaceFormat = capabilities.Formats[0]
	if len(capabilities.AlphaModes) > 0 {
		w.alphaMode = capabilities.AlphaModes[0]
	}

	if err := w.createPipeline(); err != nil {
		w.Release()
		return nil, err
	}
	w.Resize(width, height)
	return w, nil
}

func (w *wgpuPresenter) createPipeline() error {
	module, err := w.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Frame Blit Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: blitShader,
		},
	})
	if err != nil {
		return fmt.Errorf("renderer: blit shader: %w", err)
	}

	w.layout, err = w.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Blit Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("renderer: blit bind group layout: %w", err)
	}

	pipelineLayout, err := w.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Frame Blit",
		BindGroupLayouts: []*wgpu.BindGroupLayout{w.layout},
	})
	if err != nil {
		return fmt.Errorf("renderer: blit pipeline layout: %w", err)
	}

	w.pipeline, err = w.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Frame Blit Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    w.surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("renderer: blit pipeline: %w", err)
	}

	w.sampler, err = w.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Frame Blit Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("renderer: blit sampler: %w", err)
	}
	return nil
}

func (w *wgpuPresenter) Resize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if width <= 0 || height <= 0 || w.surface == nil {
		return
	}
	w.surface.Configure(w.adapter, w.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      w.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: w.presentMode,
		AlphaMode:   w.alphaMode,
	})
}

// frameFormat matches the surface encoding so sRGB pixels from the rasterizer are not encoded twice.
func (w *wgpuPresenter) frameFormat() wgpu.TextureFormat {
	switch w.surfaceFormat {
	case wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatRGBA8UnormSrgb:
		return wgpu.TextureFormatRGBA8UnormSrgb
	}
	return wgpu.TextureFormatRGBA8Unorm
}

func (w *wgpuPresenter) ensureTexture(width, height int) error {
	if w.texture != nil && w.texWidth == width && w.texHeight == height {
		return nil
	}
	w.releaseTexture()

	tex, err := w.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "Frame Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		Format:        w.frameFormat(),
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}
	bg, err := w.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Blit Bind Group",
		Layout: w.layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: w.sampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return err
	}

	w.texture, w.view, w.bindGroup = tex, view, bg
	w.texWidth, w.texHeight = width, height
	return nil
}

func (w *wgpuPresenter) Present(fb *raster.FrameBuffer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if fb == nil || w.surface == nil {
		return nil
	}
	if err := w.ensureTexture(fb.Width, fb.Height); err != nil {
		return fmt.Errorf("renderer: frame texture: %w", err)
	}

	w.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  w.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		fb.Color,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(fb.Width * 4),
			RowsPerImage: uint32(fb.Height),
		},
		&wgpu.Extent3D{
			Width:              uint32(fb.Width),
			Height:             uint32(fb.Height),
			DepthOrArrayLayers: 1,
		},
	)

	surfaceTexture, err := w.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	target, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer target.Release()

	encoder, err := w.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       target,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	pass.SetPipeline(w.pipeline)
	pass.SetBindGroup(0, w.bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	w.queue.Submit(commandBuffer)
	w.surface.Present()
	return nil
}

func (w *wgpuPresenter) releaseTexture() {
	if w.bindGroup != nil {
		w.bindGroup.Release()
		w.bindGroup = nil
	}
	if w.view != nil {
		w.view.Release()
		w.view = nil
	}
	if w.texture != nil {
		w.texture.Release()
		w.texture = nil
	}
	w.texWidth, w.texHeight = 0, 0
}

func (w *wgpuPresenter) Release() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.releaseTexture()
	if w.sampler != nil {
		w.sampler.Release()
		w.sampler = nil
	}
	if w.pipeline != nil {
		w.pipeline.Release()
		w.pipeline = nil
	}
	if w.layout != nil {
		w.layout.Release()
		w.layout = nil
	}
	if w.surface != nil {
		w.surface.Release()
		w.surface = nil
	}
	if w.device != nil {
		w.device.Release()
		w.device = nil
	}
	if w.adapter != nil {
		w.adapter.Release()
		w.adapter = nil
	}
	if w.instance != nil {
		w.instance.Release()
		w.instance = nil
	}
}
