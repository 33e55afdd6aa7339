package main

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bbredesen/obj-viewer/mesh"
	"github.com/bbredesen/obj-viewer/texture"
)

// GPUMesh is a vertex array over one interleaved, non-indexed vertex buffer.
// texture is 0 when the mesh has no material texture of its own.
type GPUMesh struct {
	name        string
	vao, vbo    uint32
	vertexCount int32
	texture     uint32
}

func (app *App) createMesh(data *mesh.Data) *GPUMesh {
	m := &GPUMesh{name: data.Name, vertexCount: int32(data.VertexCount())}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if buf := data.Buffer(); len(buf) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(buf)*4, gl.Ptr(buf), gl.STATIC_DRAW)
	}

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, mesh.Stride, mesh.PositionOffset)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, mesh.Stride, mesh.NormalOffset)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, mesh.Stride, mesh.TexCoordOffset)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	if data.Material.Texture != "" {
		m.texture = app.loadTexture(data.Material.Texture)
	}
	return m
}

// loadTexture always returns a texture handle. A file that cannot be decoded
// is logged and leaves the texture empty. Each path is uploaded once.
func (app *App) loadTexture(path string) uint32 {
	if id, ok := app.texturesByPath[path]; ok {
		return id
	}

	img, err := texture.Load(path)
	if err != nil {
		app.logger.Error("could not load texture", "path", path, "err", err)
	} else {
		app.logger.Debug("loaded texture", "path", path, "size", [2]int{img.Width, img.Height}, "format", img.Format())
	}

	id := app.ctx.CreateTexture(img)
	app.textures = append(app.textures, id)
	if app.texturesByPath == nil {
		app.texturesByPath = make(map[string]uint32)
	}
	app.texturesByPath[path] = id
	return id
}

func (app *App) destroyBuffers() {
	for _, m := range app.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
	}
	app.meshes = nil

	app.ctx.DeleteTextures(app.textures...)
	app.textures = nil
	app.texturesByPath = nil
}

// Draw uploads the model matrix and issues one non-indexed triangle draw over
// the whole buffer. Empty meshes draw nothing.
func (app *App) Draw(m *GPUMesh, model mgl32.Mat4) {
	app.pipeline.SetModel(model)

	if m.vertexCount == 0 {
		return
	}

	if m.texture != 0 {
		app.ctx.BindTexture(colorTextureUnit, m.texture)
		defer app.ctx.BindTexture(colorTextureUnit, app.colorTexture)
	}

	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
	gl.BindVertexArray(0)
}
