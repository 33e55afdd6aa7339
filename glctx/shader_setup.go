package glctx

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/bbredesen/obj-viewer/shader"
)

// The Context is the shader.Compiler used at startup.
var _ shader.Compiler = (*Context)(nil)

func (ctx *Context) CompileShader(stage shader.Stage, source string) (uint32, string, bool) {
	var kind uint32 = gl.VERTEX_SHADER
	if stage == shader.Fragment {
		kind = gl.FRAGMENT_SHADER
	}

	id := gl.CreateShader(kind)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
		return id, infoLog(logLength, func(buf *uint8) { gl.GetShaderInfoLog(id, logLength, nil, buf) }), false
	}
	return id, "", true
}

func (ctx *Context) LinkProgram(shaders ...uint32) (uint32, string, bool) {
	id := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(id, s)
	}
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		return id, infoLog(logLength, func(buf *uint8) { gl.GetProgramInfoLog(id, logLength, nil, buf) }), false
	}

	for _, s := range shaders {
		gl.DetachShader(id, s)
	}
	return id, "", true
}

func (ctx *Context) DeleteShader(id uint32) {
	if id != 0 {
		gl.DeleteShader(id)
	}
}

func (ctx *Context) DeleteProgram(id uint32) {
	if id != 0 {
		gl.DeleteProgram(id)
	}
}

func (ctx *Context) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (ctx *Context) UseProgram(id uint32) {
	gl.UseProgram(id)
}

func infoLog(length int32, read func(*uint8)) string {
	if length <= 0 {
		return "(no info log)"
	}
	log := strings.Repeat("\x00", int(length+1))
	read(gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}
