package mesh

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chewxy/math32"
	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"
)

// OBJ is a decoded OBJ file expanded into whole triangles.
type OBJ struct {
	Data

	// MaterialLib is the mtllib named by the file, relative to it.
	MaterialLib string

	// Skipped counts faces that were logged and dropped.
	Skipped int
}

// ParseOBJ decodes OBJ text without a material library and expands every
// face. Faces with more than three vertices are fan triangulated. A face
// that references a missing position or a non-finite value is logged and
// skipped. The decoder itself rejects unparsable lines, and that error is
// returned with an empty result.
func ParseOBJ(r io.Reader, logger *slog.Logger) (*OBJ, error) {
	dec, err := obj.DecodeReader(r, strings.NewReader(""))
	if err != nil {
		return &OBJ{}, err
	}
	return expandOBJ(dec, logger), nil
}

func expandOBJ(dec *obj.Decoder, logger *slog.Logger) *OBJ {
	if logger == nil {
		logger = slog.Default()
	}
	for _, w := range dec.Warnings {
		logger.Debug("obj decoder", "warning", w)
	}

	out := &OBJ{MaterialLib: dec.Matlib}
	for _, o := range dec.Objects {
		for i, face := range o.Faces {
			if err := out.appendFace(dec, face); err != nil {
				logger.Warn("skipping malformed obj face", "object", o.Name, "face", i, "err", err)
				out.Skipped++
			}
		}
	}
	return out
}

// appendFace resolves every corner before emitting anything so a bad index
// drops the whole face. A texcoord or normal index that is absent or out of
// range leaves that attribute unset.
func (o *OBJ) appendFace(dec *obj.Decoder, face obj.Face) error {
	if len(face.Vertices) < 3 {
		return fmt.Errorf("face has %d vertices, need at least 3", len(face.Vertices))
	}

	verts := make([]Vertex, len(face.Vertices))
	hasNormal := make([]bool, len(face.Vertices))
	for i, vi := range face.Vertices {
		p, ok := vec3At(dec.Vertices, vi)
		if !ok {
			return fmt.Errorf("position index %d out of range (have %d)", vi+1, len(dec.Vertices)/3)
		}
		if !finite(p[:]...) {
			return fmt.Errorf("non-finite position %v", p)
		}
		verts[i].Position = p

		if i < len(face.Uvs) {
			if uv, ok := vec2At(dec.Uvs, face.Uvs[i]); ok && finite(uv[:]...) {
				verts[i].TexCoord = uv
			}
		}
		if i < len(face.Normals) {
			if n, ok := vec3At(dec.Normals, face.Normals[i]); ok && finite(n[:]...) {
				verts[i].Normal, hasNormal[i] = n, true
			}
		}
	}

	for i := 1; i+1 < len(verts); i++ {
		o.appendTriangle(
			[3]Vertex{verts[0], verts[i], verts[i+1]},
			[3]bool{hasNormal[0], hasNormal[i], hasNormal[i+1]},
		)
	}
	return nil
}

// materialOf picks the first face material that names a diffuse map, or the
// first face material at all when none does.
func materialOf(dec *obj.Decoder) Material {
	var first string
	for _, o := range dec.Objects {
		for _, face := range o.Faces {
			m := dec.Materials[face.Material]
			if m == nil {
				continue
			}
			if m.MapKd != "" {
				return Material{Name: m.Name, Texture: m.MapKd}
			}
			if first == "" {
				first = m.Name
			}
		}
	}
	return Material{Name: first}
}

func vec3At(a []float32, i int) (mgl32.Vec3, bool) {
	if i < 0 || 3*i+2 >= len(a) {
		return mgl32.Vec3{}, false
	}
	return mgl32.Vec3{a[3*i], a[3*i+1], a[3*i+2]}, true
}

func vec2At(a []float32, i int) (mgl32.Vec2, bool) {
	if i < 0 || 2*i+1 >= len(a) {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{a[2*i], a[2*i+1]}, true
}

func finite(vs ...float32) bool {
	for _, v := range vs {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}
