package main

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bbredesen/obj-viewer/config"
	"github.com/bbredesen/obj-viewer/glctx"
	"github.com/bbredesen/obj-viewer/mesh"
	"github.com/bbredesen/obj-viewer/transform"
)

// instance is one draw of a mesh, offset from the shared transform by its
// start position.
type instance struct {
	mesh  *GPUMesh
	start mgl32.Vec3
}

type App struct {
	cfg    config.Config
	logger *slog.Logger

	ctx      glctx.Context
	pipeline Pipeline

	meshes    []*GPUMesh
	instances []instance

	textures                []uint32
	texturesByPath          map[string]uint32
	colorTexture, aoTexture uint32

	motion *transform.Accumulator

	lastFrameTime float64
}

func NewApp(cfg config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		motion: transform.NewAccumulator(cfg.Motion.Params()),
	}
}

// Initialize opens the window and creates every GPU resource. Only a shader
// failure is returned; missing meshes and textures are logged and drawn empty.
func (app *App) Initialize() error {
	app.ctx.Logger = app.logger
	app.ctx.OnReset = app.motion.Reset
	app.ctx.Initialize(glctx.Settings{
		Width:  app.cfg.Window.Width,
		Height: app.cfg.Window.Height,
		Title:  app.cfg.Window.Title,
		VSync:  app.cfg.Window.VSync,
	}, app.cfg.Keys)

	if err := app.pipeline.Initialize(&app.ctx, &app.cfg); err != nil {
		return err
	}
	app.ctx.OnResize = app.pipeline.SetViewport

	app.loadMeshes()

	app.colorTexture = app.loadTexture(app.cfg.Textures.Color)
	app.aoTexture = app.loadTexture(app.cfg.Textures.AO)

	app.ctx.CheckError("initialize")
	return nil
}

func (app *App) loadMeshes() {
	loader := &mesh.Loader{Logger: app.logger}

	byName := make(map[string]*GPUMesh, len(app.cfg.Meshes))
	for _, m := range app.cfg.Meshes {
		data, err := loader.Load(m.Path)
		if err != nil {
			app.logger.Error("could not load mesh, it will not be drawn", "mesh", m.Name, "err", err)
		}
		gm := app.createMesh(data)
		app.meshes = append(app.meshes, gm)
		byName[m.Name] = gm

		app.logger.Info("mesh ready", "mesh", m.Name, "triangles", data.TriangleCount())
	}

	for _, inst := range app.cfg.Instances {
		app.instances = append(app.instances, instance{
			mesh:  byName[inst.Mesh],
			start: inst.Position.Vec(),
		})
	}
}

// Run draws frames until the window is asked to close.
func (app *App) Run() {
	app.lastFrameTime = app.ctx.Time()
	for !app.ctx.ShouldClose() {
		app.drawFrame()
	}
}

func (app *App) drawFrame() {
	now := app.ctx.Time()
	dt := float32(now - app.lastFrameTime)
	app.lastFrameTime = now

	app.ctx.PollEvents()

	c := app.cfg.ClearColor
	app.ctx.Clear(c[0], c[1], c[2], c[3])

	app.pipeline.BindFrame(app.colorTexture, app.aoTexture)

	app.motion.Update(&app.ctx.Input, dt)
	for _, inst := range app.instances {
		app.Draw(inst.mesh, app.motion.World(inst.start))
	}

	app.ctx.SwapBuffers()
}

// Teardown releases GPU resources in reverse order of creation.
func (app *App) Teardown() {
	app.destroyBuffers()
	app.pipeline.Teardown()
	app.ctx.Teardown()
}
