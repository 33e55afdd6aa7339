package transform

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func hold(actions ...Action) *Input {
	in := &Input{}
	for _, a := range actions {
		in.Set(a, true)
	}
	return in
}

func TestMovementSigns(t *testing.T) {
	tests := []struct {
		action Action
		want   mgl32.Vec3
	}{
		{MoveLeft, mgl32.Vec3{-1, 0, 0}},
		{MoveRight, mgl32.Vec3{1, 0, 0}},
		{MoveUp, mgl32.Vec3{0, 1, 0}},
		{MoveDown, mgl32.Vec3{0, -1, 0}},
		{MoveFront, mgl32.Vec3{0, 0, -1}},
		{MoveBack, mgl32.Vec3{0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			a := NewAccumulator(Params{Speed: 2, ScaleRate: 1, AngleRate: 180})
			a.Update(hold(tt.action), 0.5)
			if !a.Offset.ApproxEqual(tt.want) {
				t.Errorf("offset = %v, want %v", a.Offset, tt.want)
			}
		})
	}
}

func TestOpposingMovesCancel(t *testing.T) {
	a := NewAccumulator(DefaultParams())
	a.Update(hold(MoveLeft, MoveRight, MoveUp), 0.1)
	if !a.Offset.ApproxEqual(mgl32.Vec3{0, 0.25, 0}) {
		t.Errorf("offset = %v", a.Offset)
	}
}

func TestScaleIsMultiplicative(t *testing.T) {
	const (
		dt     = float32(1.0 / 60)
		frames = 90
	)
	a := NewAccumulator(DefaultParams())
	in := hold(ScaleUp)
	for i := 0; i < frames; i++ {
		a.Update(in, dt)
	}

	want := math32.Pow(1+dt*a.ScaleRate, frames)
	additive := 1 + frames*dt*a.ScaleRate
	for i := 0; i < 3; i++ {
		if math32.Abs(a.Scale[i]-want) > 1e-4 {
			t.Errorf("scale[%d] = %v, want %v", i, a.Scale[i], want)
		}
		if math32.Abs(a.Scale[i]-additive) < 1e-3 {
			t.Errorf("scale[%d] = %v looks additive", i, a.Scale[i])
		}
	}
}

func TestScaleDownWinsOverScaleUp(t *testing.T) {
	both := NewAccumulator(DefaultParams())
	down := NewAccumulator(DefaultParams())
	for i := 0; i < 10; i++ {
		both.Update(hold(ScaleUp, ScaleDown), 0.02)
		down.Update(hold(ScaleDown), 0.02)
	}
	if both.Scale != down.Scale {
		t.Errorf("both held = %v, scale down only = %v", both.Scale, down.Scale)
	}
	if both.Scale[0] >= 1 {
		t.Errorf("scale %v did not shrink", both.Scale)
	}
}

func TestScaleIsNotClamped(t *testing.T) {
	a := NewAccumulator(DefaultParams())
	a.Update(hold(ScaleDown), 2)
	if a.Scale[0] >= 0 {
		t.Errorf("scale = %v, want negative after an oversized step", a.Scale)
	}
}

func TestRotationMonotonicAndFrozenOnRelease(t *testing.T) {
	a := NewAccumulator(DefaultParams())
	in := hold(RotateY)

	prev := a.Rotation[1]
	for i := 0; i < 20; i++ {
		a.Update(in, 0.016)
		if a.Rotation[1] < prev {
			t.Fatalf("frame %d: angle went from %v to %v", i, prev, a.Rotation[1])
		}
		prev = a.Rotation[1]
	}
	if a.Rotation[0] != 0 || a.Rotation[2] != 0 {
		t.Errorf("other axes moved: %v", a.Rotation)
	}

	in.Set(RotateY, false)
	frozen := a.Rotation
	for i := 0; i < 5; i++ {
		a.Update(in, 0.016)
	}
	if a.Rotation != frozen {
		t.Errorf("rotation %v changed after release from %v", a.Rotation, frozen)
	}
}

func TestWorldComposesTranslationAfterLocal(t *testing.T) {
	a := NewAccumulator(DefaultParams())
	a.Offset = mgl32.Vec3{0, 1, 0}
	a.Scale = mgl32.Vec3{2, 2, 2}
	a.Rotation = mgl32.Vec3{0, 0, 90}

	m := a.World(mgl32.Vec3{-1, 0, 0})
	// (1,0,0) scaled to (2,0,0), rotated 90 degrees about Z to (0,2,0),
	// then moved by offset + start.
	got := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	want := mgl32.Vec3{-1, 3, 0}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("transformed point = %v, want %v", got, want)
	}
}

func TestRotationOrderIsXThenYThenZ(t *testing.T) {
	a := NewAccumulator(DefaultParams())
	a.Rotation = mgl32.Vec3{30, 45, 60}

	want := mgl32.HomogRotate3DX(mgl32.DegToRad(30)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(45))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(60)))
	if !a.Local().ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("local = %v, want %v", a.Local(), want)
	}
}

func TestLocalRotationIsInDegrees(t *testing.T) {
	a := NewAccumulator(DefaultParams())
	a.Rotation = mgl32.Vec3{0, 0, 90}

	got := a.Local().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !got.ApproxEqualThreshold(mgl32.Vec4{0, 1, 0, 1}, 1e-6) {
		t.Errorf("90 degrees about Z maps +X to %v, want +Y", got)
	}
}

func TestReset(t *testing.T) {
	a := NewAccumulator(DefaultParams())
	a.Update(hold(MoveUp, ScaleUp, RotateX), 0.5)
	a.Reset()
	if a.Local() != mgl32.Ident4() || a.World(mgl32.Vec3{}) != mgl32.Ident4() {
		t.Errorf("reset state is not identity: %+v", a)
	}
}

func TestInput(t *testing.T) {
	var in Input
	in.Set(RotateX, true)
	in.Set(Action(99), true)
	if !in.Held(RotateX) || in.Held(RotateY) || in.Held(Action(99)) {
		t.Errorf("unexpected held state %+v", in)
	}
	in.Clear()
	if in.Held(RotateX) {
		t.Error("Clear left RotateX held")
	}

	var nilInput *Input
	if nilInput.Held(MoveUp) {
		t.Error("nil input reports held")
	}

	for a := RotateX; a < numActions; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
}
