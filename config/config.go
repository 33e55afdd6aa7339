// Package config describes everything the viewer used to hardcode: window,
// shader and texture paths, uniform names, camera, lights, material
// coefficients and the list of mesh instances.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bbredesen/obj-viewer/transform"
)

// ActionReset is the key binding action that restores the initial transform.
const ActionReset = "reset"

var (
	ErrUnknownMesh   = errors.New("instance references unknown mesh")
	ErrMissingPath   = errors.New("required path is empty")
	ErrDuplicateMesh = errors.New("mesh name is used more than once")
)

type Config struct {
	Window   Window   `yaml:"window"`
	Shaders  Shaders  `yaml:"shaders"`
	Uniforms Uniforms `yaml:"uniforms"`
	Textures Textures `yaml:"textures"`
	Camera   Camera   `yaml:"camera"`
	Material Material `yaml:"material"`
	Lights   Lights   `yaml:"lights"`
	Motion   Motion   `yaml:"motion"`

	ClearColor Color `yaml:"clearColor"`

	Meshes    []Mesh     `yaml:"meshes"`
	Instances []Instance `yaml:"instances"`

	Keys map[string]string `yaml:"keys,omitempty"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

type Shaders struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// Uniforms maps each role in the pipeline to the name the shader source uses.
type Uniforms struct {
	ColorTexture string `yaml:"colorTexture"`
	AOMap        string `yaml:"aoMap"`
	Model        string `yaml:"model"`
	Projection   string `yaml:"projection"`
	View         string `yaml:"view"`
	Ka           string `yaml:"ka"`
	Kd           string `yaml:"kd"`
	Ks           string `yaml:"ks"`
	Shininess    string `yaml:"shininess"`
	MainLight    string `yaml:"mainLight"`
	FillLight    string `yaml:"fillLight"`
	BackLight    string `yaml:"backLight"`
}

// Names lists every uniform name, for resolving locations in one pass.
func (u Uniforms) Names() []string {
	return []string{
		u.ColorTexture, u.AOMap, u.Model, u.Projection, u.View,
		u.Ka, u.Kd, u.Ks, u.Shininess,
		u.MainLight, u.FillLight, u.BackLight,
	}
}

type Textures struct {
	Color string `yaml:"color"`
	AO    string `yaml:"ao"`
}

type Camera struct {
	FOV    float32 `yaml:"fov"` // vertical, degrees
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
	Eye    Vec3    `yaml:"eye"`
	Target Vec3    `yaml:"target"`
	Up     Vec3    `yaml:"up"`
}

type Material struct {
	Ka        float32 `yaml:"ka"`
	Kd        float32 `yaml:"kd"`
	Ks        float32 `yaml:"ks"`
	Shininess float32 `yaml:"shininess"`
}

type Lights struct {
	Main Vec3 `yaml:"main"`
	Fill Vec3 `yaml:"fill"`
	Back Vec3 `yaml:"back"`
}

type Motion struct {
	Speed     float32 `yaml:"speed"`
	ScaleRate float32 `yaml:"scaleRate"`
	AngleRate float32 `yaml:"angleRate"`
}

func (m Motion) Params() transform.Params {
	return transform.Params{Speed: m.Speed, ScaleRate: m.ScaleRate, AngleRate: m.AngleRate}
}

type Mesh struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type Instance struct {
	Mesh     string `yaml:"mesh"`
	Position Vec3   `yaml:"position"`
}

// Default is the stock scene: two bricks-textured cubes either
// side of a sphere, seen through a narrow 10 degree lens from z=15.
func Default() Config {
	p := transform.DefaultParams()
	return Config{
		Window: Window{Width: 1224, Height: 720, Title: "obj-viewer", VSync: true},
		Shaders: Shaders{
			Vertex:   "Shaders/cube.vert",
			Fragment: "Shaders/cube.frag",
		},
		Uniforms: Uniforms{
			ColorTexture: "colorTexture",
			AOMap:        "aoMap",
			Model:        "model",
			Projection:   "projectionMatrix",
			View:         "viewMatrix",
			Ka:           "ka",
			Kd:           "kd",
			Ks:           "ks",
			Shininess:    "shininess",
			MainLight:    "mainLight",
			FillLight:    "fillLight",
			BackLight:    "backLight",
		},
		Textures: Textures{
			Color: "Assets/bricks_color.png",
			AO:    "Assets/bricks_ao.png",
		},
		Camera: Camera{
			FOV: 10, Near: 0.1, Far: 100,
			Eye: Vec3{0, 0, 15}, Target: Vec3{0, 0, 0}, Up: Vec3{0, 1, 0},
		},
		Material: Material{Ka: 0.5, Kd: 0.8, Ks: 0.05, Shininess: 8},
		Lights: Lights{
			Main: Vec3{0.6, 1.2, 2.5},
			Fill: Vec3{-1.0, 0.8, 2.0},
			Back: Vec3{0.0, 1.5, -2.5},
		},
		Motion:     Motion{Speed: p.Speed, ScaleRate: p.ScaleRate, AngleRate: p.AngleRate},
		ClearColor: Color{0.1, 0.1, 0.12, 1.0},
		Meshes: []Mesh{
			{Name: "cube", Path: "Assets/cube.obj"},
			{Name: "sphere", Path: "Assets/sphere.obj"},
		},
		Instances: []Instance{
			{Mesh: "cube", Position: Vec3{-1, 0, 0}},
			{Mesh: "cube", Position: Vec3{1, 0, 0}},
			{Mesh: "sphere", Position: Vec3{0, 0, 0}},
		},
	}
}

// Load decodes the YAML file at path over Default(). Keys absent from the file
// keep their default; a meshes or instances list in the file replaces the
// default list as a whole.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// AddMesh registers path as a mesh and draws one instance of it at the origin.
// A name already in use gets a numeric suffix; the name actually registered
// is returned.
func (c *Config) AddMesh(name, path string) string {
	unique := name
	for n := 2; c.MeshIndex(unique) >= 0; n++ {
		unique = fmt.Sprintf("%s-%d", name, n)
	}
	c.Meshes = append(c.Meshes, Mesh{Name: unique, Path: path})
	c.Instances = append(c.Instances, Instance{Mesh: unique})
	return unique
}

func (c *Config) MeshIndex(name string) int {
	for i, m := range c.Meshes {
		if m.Name == name {
			return i
		}
	}
	return -1
}

func (c *Config) Validate() error {
	if c.Shaders.Vertex == "" || c.Shaders.Fragment == "" {
		return fmt.Errorf("shaders: %w", ErrMissingPath)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d is not positive", c.Window.Width, c.Window.Height)
	}
	for i, m := range c.Meshes {
		if m.Name == "" || m.Path == "" {
			return fmt.Errorf("mesh %d: %w", i, ErrMissingPath)
		}
		if first := c.MeshIndex(m.Name); first != i {
			return fmt.Errorf("mesh %d (%q) and mesh %d: %w", i, m.Name, first, ErrDuplicateMesh)
		}
	}
	for i, inst := range c.Instances {
		if c.MeshIndex(inst.Mesh) < 0 {
			return fmt.Errorf("instance %d (%q): %w", i, inst.Mesh, ErrUnknownMesh)
		}
	}
	for k, v := range c.Keys {
		if _, ok := transform.ParseAction(v); !ok && v != ActionReset {
			return fmt.Errorf("key %q: unknown action %q", k, v)
		}
	}
	return nil
}

func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
