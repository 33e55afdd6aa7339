// Package shader builds a linked vertex+fragment program through a Compiler,
// the small slice of the graphics API that compiling needs.
package shader

import (
	"errors"
	"fmt"
	"os"
)

type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Compiler is implemented by the GL context. Compile and link failures are
// reported as the driver's info log; the returned id is meaningless then.
type Compiler interface {
	CompileShader(stage Stage, source string) (id uint32, infoLog string, ok bool)
	LinkProgram(shaders ...uint32) (id uint32, infoLog string, ok bool)
	DeleteShader(id uint32)
	DeleteProgram(id uint32)
	UniformLocation(program uint32, name string) int32
}

type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "shader program linking failed: " + e.Log
}

var ErrEmptySource = errors.New("empty shader source")

type Program struct {
	ID uint32

	c Compiler
}

// Build compiles both stages and links them. On any failure every object it
// created is deleted and the program is nil.
func Build(c Compiler, vertexSrc, fragmentSrc string) (*Program, error) {
	vs, err := compile(c, Vertex, vertexSrc)
	if err != nil {
		return nil, err
	}
	defer c.DeleteShader(vs)

	fs, err := compile(c, Fragment, fragmentSrc)
	if err != nil {
		return nil, err
	}
	defer c.DeleteShader(fs)

	id, log, ok := c.LinkProgram(vs, fs)
	if !ok {
		c.DeleteProgram(id)
		return nil, &LinkError{Log: log}
	}
	return &Program{ID: id, c: c}, nil
}

func compile(c Compiler, stage Stage, src string) (uint32, error) {
	if src == "" {
		return 0, &CompileError{Stage: stage, Log: ErrEmptySource.Error()}
	}
	id, log, ok := c.CompileShader(stage, src)
	if !ok {
		c.DeleteShader(id)
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return id, nil
}

// Load reads the two source files and builds them.
func Load(c Compiler, vertexPath, fragmentPath string) (*Program, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("read vertex shader: %w", err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("read fragment shader: %w", err)
	}
	return Build(c, string(vs), string(fs))
}

// Uniform returns the location of name, -1 if the linker dropped or never saw it.
func (p *Program) Uniform(name string) int32 {
	return p.c.UniformLocation(p.ID, name)
}

// Uniforms resolves several names at once.
func (p *Program) Uniforms(names ...string) map[string]int32 {
	locs := make(map[string]int32, len(names))
	for _, n := range names {
		locs[n] = p.Uniform(n)
	}
	return locs
}

func (p *Program) Delete() {
	if p == nil || p.ID == 0 {
		return
	}
	p.c.DeleteProgram(p.ID)
	p.ID = 0
}
