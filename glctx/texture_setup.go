package glctx

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/bbredesen/obj-viewer/texture"
)

func glFormat(f texture.Format) uint32 {
	switch f {
	case texture.FormatRed:
		return gl.RED
	case texture.FormatRGBA:
		return gl.RGBA
	}
	return gl.RGB
}

// CreateTexture makes a 2D texture with repeat wrapping and linear filtering
// and uploads img with a full mipmap chain. A nil img still returns a usable
// handle; sampling it gives undefined (typically black) texels.
func (ctx *Context) CreateTexture(img *texture.Image) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	if img != nil && len(img.Pix) > 0 {
		format := glFormat(img.Format())

		// Rows of 1 and 3 channel images are not 4-byte aligned.
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(img.Width), int32(img.Height), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

// BindTexture binds id to texture unit `unit` (0 for GL_TEXTURE0, ...).
func (ctx *Context) BindTexture(unit uint32, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (ctx *Context) DeleteTextures(ids ...uint32) {
	if len(ids) == 0 {
		return
	}
	gl.DeleteTextures(int32(len(ids)), &ids[0])
}
