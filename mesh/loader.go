package mesh

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/g3n/engine/loader/obj"
)

var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Loader reads mesh files by extension and resolves their material reference.
// The zero value logs on slog.Default().
type Loader struct {
	Logger *slog.Logger
}

func (l *Loader) logger() *slog.Logger {
	if l == nil || l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// Load never returns a nil *Data: on failure the result is empty (or holds
// whatever was read before the failure) so a caller may log and keep drawing.
// A material texture path is resolved against the file that names it.
func (l *Loader) Load(path string) (*Data, error) {
	var (
		data *Data
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		data, err = l.loadOBJ(path)
	case ".gltf", ".glb":
		data, err = LoadGLTF(path)
		if t := data.Material.Texture; t != "" && !filepath.IsAbs(t) {
			data.Material.Texture = filepath.Join(filepath.Dir(path), t)
		}
	default:
		return &Data{}, fmt.Errorf("load mesh %s: %w", path, ErrUnsupportedFormat)
	}

	if data.Name == "" {
		data.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err != nil {
		return data, fmt.Errorf("load mesh %s: %w", path, err)
	}

	l.logger().Debug("loaded mesh", "path", path, "vertices", data.VertexCount(), "texture", data.Material.Texture)
	return data, nil
}

// loadOBJ decodes path once to find its mtllib, then again with that
// library when it exists. The texture named by map_Kd is relative to the MTL
// file.
func (l *Loader) loadOBJ(path string) (*Data, error) {
	dec, err := obj.Decode(path, os.DevNull)
	if err != nil {
		return &Data{}, err
	}

	out := expandOBJ(dec, l.logger().With("file", path))
	if out.Skipped > 0 {
		l.logger().Warn("obj had malformed faces", "path", path, "skipped", out.Skipped)
	}
	if out.MaterialLib == "" {
		return &out.Data, nil
	}

	mtlPath := filepath.Join(filepath.Dir(path), out.MaterialLib)
	if _, err := os.Stat(mtlPath); err != nil {
		l.logger().Error("could not open material file", "path", mtlPath, "err", err)
		return &out.Data, nil
	}
	withMaterials, err := obj.Decode(path, mtlPath)
	if err != nil {
		l.logger().Error("could not read material file", "path", mtlPath, "err", err)
		return &out.Data, nil
	}

	out.Material = materialOf(withMaterials)
	if t := out.Material.Texture; t != "" && !filepath.IsAbs(t) {
		out.Material.Texture = filepath.Join(filepath.Dir(mtlPath), t)
	}
	if out.Material.Name == "" {
		l.logger().Warn("no material applied", "path", mtlPath)
	}
	return &out.Data, nil
}
