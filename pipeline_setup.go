package main

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bbredesen/obj-viewer/config"
	"github.com/bbredesen/obj-viewer/glctx"
	"github.com/bbredesen/obj-viewer/shader"
)

// Texture units the fragment shader samples from.
const (
	colorTextureUnit = 0
	aoTextureUnit    = 1
)

type uniformLocations struct {
	colorTexture, aoMap     int32
	model, projection, view int32
	ka, kd, ks, shininess   int32
	mainLight, fillLight    int32
	backLight               int32
}

type Pipeline struct {
	ctx     *glctx.Context
	program *shader.Program
	loc     uniformLocations

	camera   config.Camera
	material config.Material
	lights   config.Lights
}

// Initialize builds the textured AO program and uploads the camera. A shader
// that fails to compile or link is returned as an error and the caller stops.
func (p *Pipeline) Initialize(ctx *glctx.Context, cfg *config.Config) error {
	p.ctx = ctx
	p.camera, p.material, p.lights = cfg.Camera, cfg.Material, cfg.Lights

	prog, err := shader.Load(ctx, cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	if err != nil {
		return err
	}
	p.program = prog

	u := cfg.Uniforms
	locs := prog.Uniforms(u.Names()...)
	p.loc = uniformLocations{
		colorTexture: locs[u.ColorTexture],
		aoMap:        locs[u.AOMap],
		model:        locs[u.Model],
		projection:   locs[u.Projection],
		view:         locs[u.View],
		ka:           locs[u.Ka],
		kd:           locs[u.Kd],
		ks:           locs[u.Ks],
		shininess:    locs[u.Shininess],
		mainLight:    locs[u.MainLight],
		fillLight:    locs[u.FillLight],
		backLight:    locs[u.BackLight],
	}
	for name, loc := range locs {
		if loc < 0 {
			ctx.Logger.Warn("uniform not active in shader program", "uniform", name)
		}
	}

	ctx.UseProgram(prog.ID)

	width, height := ctx.FramebufferSize()
	p.SetViewport(width, height)

	view := mgl32.LookAtV(p.camera.Eye.Vec(), p.camera.Target.Vec(), p.camera.Up.Vec())
	gl.UniformMatrix4fv(p.loc.view, 1, false, &view[0])

	return nil
}

// SetViewport recomputes the projection for a framebuffer of the given size.
func (p *Pipeline) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	aspect := float32(width) / float32(height)
	projection := mgl32.Perspective(mgl32.DegToRad(p.camera.FOV), aspect, p.camera.Near, p.camera.Far)
	gl.UniformMatrix4fv(p.loc.projection, 1, false, &projection[0])
}

// BindFrame binds the two textures and uploads the lighting and material
// uniforms. They never change during a run but are sent every frame.
func (p *Pipeline) BindFrame(colorTexture, aoTexture uint32) {
	p.ctx.BindTexture(colorTextureUnit, colorTexture)
	gl.Uniform1i(p.loc.colorTexture, colorTextureUnit)

	p.ctx.BindTexture(aoTextureUnit, aoTexture)
	gl.Uniform1i(p.loc.aoMap, aoTextureUnit)

	gl.Uniform1f(p.loc.ka, p.material.Ka)
	gl.Uniform1f(p.loc.kd, p.material.Kd)
	gl.Uniform1f(p.loc.ks, p.material.Ks)
	gl.Uniform1f(p.loc.shininess, p.material.Shininess)

	setVec3(p.loc.mainLight, p.lights.Main)
	setVec3(p.loc.fillLight, p.lights.Fill)
	setVec3(p.loc.backLight, p.lights.Back)
}

func (p *Pipeline) SetModel(m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.loc.model, 1, false, &m[0])
}

func (p *Pipeline) Teardown() {
	p.program.Delete()
}

func setVec3(loc int32, v config.Vec3) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}
