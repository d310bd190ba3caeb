package renderer

import (
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"go.uber.org/zap"

	"github.com/kjkrol/gokl/internal/config"
	"github.com/kjkrol/gokl/internal/glbackend"
	"github.com/kjkrol/gokl/internal/mesh"
	"github.com/kjkrol/gokl/pkg/gfx"
	"github.com/kjkrol/gokl/pkg/scene"
	"github.com/kjkrol/gokl/pkg/shader"
)

type meshState struct {
	vao    uint32
	vbo    uint32
	vertex int32
}

// SceneRenderer draws the lit boxes and the cubes marking each point light.
type SceneRenderer struct {
	conf   *config.Config
	scene  *scene.Scene
	source FrameSource
	logger *zap.Logger

	initialized bool
	shaders     *shader.Context
	programs    *programSet
	box         *programSlot
	light       *programSlot

	boxMesh   meshState
	lightMesh meshState
	diffuse   uint32
	specular  uint32
}

func newRenderer(conf *config.Config, s *scene.Scene, source FrameSource, logger *zap.Logger) *SceneRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SceneRenderer{conf: conf, scene: s, source: source, logger: logger}
}

func (r *SceneRenderer) ensureInit() error {
	if r.initialized {
		return nil
	}
	backend, err := glbackend.Init()
	if err != nil {
		return err
	}
	r.logger.Info("OpenGL initialized", zap.String("version", glbackend.Version()))

	r.shaders = shader.NewContext(backend)
	builder := shader.NewBuilder(backend, shader.WithLogger(r.logger.Named("shader")))
	r.programs = newProgramSet(builder, r.shaders, r.conf.LenientShaders, r.logger)
	r.initialized = true

	if r.light, err = r.programs.add("light", r.conf.Shaders.Light, nil); err != nil {
		return err
	}
	if r.box, err = r.programs.add("box", r.conf.Shaders.Box, r.applyMaterial); err != nil {
		return err
	}

	r.boxMesh = uploadMesh(mesh.Box())
	r.lightMesh = uploadMesh(mesh.LightCube())
	r.diffuse = r.loadTexture(r.conf.Textures.Diffuse)
	r.specular = r.loadTexture(r.conf.Textures.Specular)

	gl.Enable(gl.DEPTH_TEST)
	return nil
}

// applyMaterial runs once per build of the box program.
func (r *SceneRenderer) applyMaterial(b *shader.Binding) {
	r.scene.Material.Apply(b)
}

func (r *SceneRenderer) Render(w *gfx.Window, dt time.Duration) {
	if w == nil || r.source == nil || !r.initialized {
		return
	}
	width, height := w.Size()
	gl.Viewport(0, 0, int32(width), int32(height))
	clear := r.scene.ClearColor
	gl.ClearColor(clear.X(), clear.Y(), clear.Z(), 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	frame := r.source.Frame(dt, w.Aspect())

	gl.BindVertexArray(r.lightMesh.vao)
	b := r.shaders.Use(r.light.program)
	for i := range r.scene.PointLights {
		r.scene.ApplyLightCube(b, i, frame)
		gl.DrawArrays(gl.TRIANGLES, 0, r.lightMesh.vertex)
	}

	gl.ActiveTexture(gl.TEXTURE0 + uint32(r.scene.Material.DiffuseUnit))
	gl.BindTexture(gl.TEXTURE_2D, r.diffuse)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(r.scene.Material.SpecularUnit))
	gl.BindTexture(gl.TEXTURE_2D, r.specular)

	gl.BindVertexArray(r.boxMesh.vao)
	b = r.shaders.Use(r.box.program)
	for i := range r.scene.Boxes {
		r.scene.ApplyBox(b, i, frame)
		gl.DrawArrays(gl.TRIANGLES, 0, r.boxMesh.vertex)
	}
	gl.BindVertexArray(0)
}

// Reload rebuilds the programs that read path. It must run on the render
// thread; use gfx.Window.Post from other goroutines.
func (r *SceneRenderer) Reload(path string) error {
	if !r.initialized {
		return nil
	}
	_, err := r.programs.reload(path)
	return err
}

func (r *SceneRenderer) Close() {
	if !r.initialized {
		return
	}
	r.programs.close()
	for _, m := range []*meshState{&r.boxMesh, &r.lightMesh} {
		if m.vbo != 0 {
			gl.DeleteBuffers(1, &m.vbo)
		}
		if m.vao != 0 {
			gl.DeleteVertexArrays(1, &m.vao)
		}
		*m = meshState{}
	}
	for _, tex := range []*uint32{&r.diffuse, &r.specular} {
		if *tex != 0 {
			gl.DeleteTextures(1, tex)
			*tex = 0
		}
	}
	r.initialized = false
}

func uploadMesh(m mesh.Mesh) meshState {
	var state meshState
	gl.GenVertexArrays(1, &state.vao)
	gl.GenBuffers(1, &state.vbo)

	gl.BindVertexArray(state.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, state.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	stride := int32(m.Layout.Stride * 4)
	for _, attr := range m.Layout.Attributes {
		gl.VertexAttribPointerWithOffset(attr.Location, attr.Size, gl.FLOAT, false, stride, uintptr(attr.Offset*4))
		gl.EnableVertexAttribArray(attr.Location)
	}
	gl.BindVertexArray(0)
	state.vertex = m.VertexCount()
	return state
}
