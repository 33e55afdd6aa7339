// Package transform turns held controls and frame time into the model matrix
// shared by every drawn instance.
package transform

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Params struct {
	// Speed is the translation rate in world units per second.
	Speed float32
	// ScaleRate is the fractional scale change per second.
	ScaleRate float32
	// AngleRate is the rotation rate in degrees per second.
	AngleRate float32
}

func DefaultParams() Params {
	return Params{Speed: 2.5, ScaleRate: 1.0, AngleRate: 180}
}

// Accumulator holds the translation, scale and rotation built up from input so
// far. Scale is not clamped: held long enough, or stepped with
// dt > 1/ScaleRate, it reaches zero or goes negative.
type Accumulator struct {
	Params

	Offset   mgl32.Vec3
	Scale    mgl32.Vec3
	Rotation mgl32.Vec3 // degrees about X, Y, Z
}

func NewAccumulator(p Params) *Accumulator {
	a := &Accumulator{Params: p}
	a.Reset()
	return a
}

func (a *Accumulator) Reset() {
	a.Offset = mgl32.Vec3{}
	a.Scale = mgl32.Vec3{1, 1, 1}
	a.Rotation = mgl32.Vec3{}
}

var moveAxes = [...]struct {
	action Action
	dir    mgl32.Vec3
}{
	{MoveLeft, mgl32.Vec3{-1, 0, 0}},
	{MoveRight, mgl32.Vec3{1, 0, 0}},
	{MoveUp, mgl32.Vec3{0, 1, 0}},
	{MoveDown, mgl32.Vec3{0, -1, 0}},
	{MoveFront, mgl32.Vec3{0, 0, -1}},
	{MoveBack, mgl32.Vec3{0, 0, 1}},
}

// Update advances the state by dt seconds of the given input.
func (a *Accumulator) Update(in *Input, dt float32) {
	step := a.Speed * dt
	for _, m := range moveAxes {
		if in.Held(m.action) {
			a.Offset = a.Offset.Add(m.dir.Mul(step))
		}
	}

	// Scale down is checked first and wins when both keys are held.
	switch {
	case in.Held(ScaleDown):
		a.Scale = a.Scale.Mul(1 - dt*a.ScaleRate)
	case in.Held(ScaleUp):
		a.Scale = a.Scale.Mul(1 + dt*a.ScaleRate)
	}

	turn := a.AngleRate * dt
	for axis, act := range [3]Action{RotateX, RotateY, RotateZ} {
		if in.Held(act) {
			a.Rotation[axis] += turn
		}
	}
}

// Local is Rx * Ry * Rz * S.
func (a *Accumulator) Local() mgl32.Mat4 {
	rot := mgl32.HomogRotate3DX(mgl32.DegToRad(a.Rotation[0])).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(a.Rotation[1]))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(a.Rotation[2])))
	return rot.Mul4(mgl32.Scale3D(a.Scale[0], a.Scale[1], a.Scale[2]))
}

// World places an instance whose start position is start: T(offset+start) * Local.
func (a *Accumulator) World(start mgl32.Vec3) mgl32.Mat4 {
	p := a.Offset.Add(start)
	return mgl32.Translate3D(p[0], p[1], p[2]).Mul4(a.Local())
}
