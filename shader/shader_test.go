package shader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeCompiler accepts any source containing "void main()" with balanced
// braces, and links unless failLink is set.
type fakeCompiler struct {
	next     uint32
	live     map[uint32]bool
	failLink bool
	programs int
}

func newFakeCompiler() *fakeCompiler {
	return &fakeCompiler{next: 1, live: map[uint32]bool{}}
}

func (f *fakeCompiler) alloc() uint32 {
	id := f.next
	f.next++
	f.live[id] = true
	return id
}

func (f *fakeCompiler) CompileShader(stage Stage, source string) (uint32, string, bool) {
	id := f.alloc()
	if !strings.Contains(source, "void main()") || strings.Count(source, "{") != strings.Count(source, "}") {
		return id, "0:1(1): error: syntax error, unexpected end of file", false
	}
	return id, "", true
}

func (f *fakeCompiler) LinkProgram(shaders ...uint32) (uint32, string, bool) {
	id := f.alloc()
	if f.failLink {
		return id, "error: fragment shader lacks `main'", false
	}
	f.programs++
	return id, "", true
}

func (f *fakeCompiler) DeleteShader(id uint32)  { delete(f.live, id) }
func (f *fakeCompiler) DeleteProgram(id uint32) { delete(f.live, id) }

func (f *fakeCompiler) UniformLocation(program uint32, name string) int32 {
	if name == "model" {
		return 3
	}
	return -1
}

const (
	goodVertex   = "#version 410 core\nvoid main() { gl_Position = vec4(0.0); }\n"
	goodFragment = "#version 410 core\nout vec4 c;\nvoid main() { c = vec4(1.0); }\n"
)

func TestBuild(t *testing.T) {
	c := newFakeCompiler()

	p, err := Build(c, goodVertex, goodFragment)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p == nil || p.ID == 0 {
		t.Fatal("no program")
	}
	// Only the program survives; both stage objects are released.
	if len(c.live) != 1 || !c.live[p.ID] {
		t.Errorf("live objects = %v, want only program %d", c.live, p.ID)
	}

	p.Delete()
	if len(c.live) != 0 {
		t.Errorf("live objects after Delete = %v", c.live)
	}
}

func TestBuildInvalidSource(t *testing.T) {
	tests := []struct {
		name      string
		vert      string
		frag      string
		wantStage Stage
	}{
		{"vertex syntax", "void main() { gl_Position = ", goodFragment, Vertex},
		{"fragment syntax", goodVertex, "void main( {", Fragment},
		{"empty vertex", "", goodFragment, Vertex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newFakeCompiler()
			p, err := Build(c, tt.vert, tt.frag)
			if p != nil {
				t.Errorf("got program %d, want none", p.ID)
			}

			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want *CompileError", err)
			}
			if ce.Stage != tt.wantStage {
				t.Errorf("stage = %v, want %v", ce.Stage, tt.wantStage)
			}
			if ce.Log == "" {
				t.Error("empty diagnostic log")
			}
			if c.programs != 0 {
				t.Errorf("linked %d programs", c.programs)
			}
			if len(c.live) != 0 {
				t.Errorf("leaked objects %v", c.live)
			}
		})
	}
}

func TestBuildLinkFailure(t *testing.T) {
	c := newFakeCompiler()
	c.failLink = true

	p, err := Build(c, goodVertex, goodFragment)
	if p != nil {
		t.Error("got a program from a failed link")
	}
	var le *LinkError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *LinkError", err)
	}
	if !strings.Contains(le.Error(), "lacks") {
		t.Errorf("link error lost the log: %v", le)
	}
	if len(c.live) != 0 {
		t.Errorf("leaked objects %v", c.live)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "cube.vert")
	frag := filepath.Join(dir, "cube.frag")
	if err := os.WriteFile(vert, []byte(goodVertex), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(frag, []byte(goodFragment), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(newFakeCompiler(), vert, frag)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	locs := p.Uniforms("model", "viewMatrix")
	if locs["model"] != 3 || locs["viewMatrix"] != -1 {
		t.Errorf("uniforms = %v", locs)
	}

	if _, err := Load(newFakeCompiler(), filepath.Join(dir, "missing.vert"), frag); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}
}
