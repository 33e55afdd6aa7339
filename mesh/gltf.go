package mesh

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF opens a .gltf or .glb file and flattens every triangle primitive of
// every mesh into one Data, expanding index buffers. Node transforms are not
// applied. The material reference is the base colour image URI of the first
// primitive that has one.
func LoadGLTF(path string) (*Data, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return &Data{}, fmt.Errorf("open gltf: %w", err)
	}
	return fromGLTF(doc)
}

func fromGLTF(doc *gltf.Document) (*Data, error) {
	out := &Data{}

	for mi, m := range doc.Meshes {
		if out.Name == "" {
			out.Name = m.Name
		}
		for pi, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			if err := appendPrimitive(out, doc, prim); err != nil {
				return out, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			if out.Material.Texture == "" {
				out.Material = primitiveMaterial(doc, prim)
			}
		}
	}

	return out, nil
}

func appendPrimitive(out *Data, doc *gltf.Document, prim *gltf.Primitive) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
	}

	var texCoords [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if texCoords, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("read texcoords: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	vertexAt := func(i uint32) (Vertex, bool, error) {
		if int(i) >= len(positions) {
			return Vertex{}, false, fmt.Errorf("index %d out of range (have %d)", i, len(positions))
		}
		v := Vertex{Position: mgl32.Vec3(positions[i])}
		if int(i) < len(texCoords) {
			v.TexCoord = mgl32.Vec2(texCoords[i])
		}
		if int(i) < len(normals) {
			v.Normal = mgl32.Vec3(normals[i])
			return v, true, nil
		}
		return v, false, nil
	}

	// A trailing partial triangle is dropped.
	for t := 0; t+2 < len(indices); t += 3 {
		var tri [3]Vertex
		var hasNormal [3]bool
		for k := 0; k < 3; k++ {
			if tri[k], hasNormal[k], err = vertexAt(indices[t+k]); err != nil {
				return err
			}
		}
		out.appendTriangle(tri, hasNormal)
	}
	return nil
}

func primitiveMaterial(doc *gltf.Document, prim *gltf.Primitive) Material {
	if prim.Material == nil {
		return Material{}
	}
	mat := doc.Materials[*prim.Material]
	out := Material{Name: mat.Name}

	pbr := mat.PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorTexture == nil {
		return out
	}
	tex := doc.Textures[pbr.BaseColorTexture.Index]
	if tex.Source == nil {
		return out
	}
	// Embedded images have no file name to hand to the texture loader.
	if uri := doc.Images[*tex.Source].URI; uri != "" && !strings.HasPrefix(uri, "data:") {
		out.Texture = uri
	}
	return out
}
