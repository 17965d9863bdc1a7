// Package camera provides the free-flying preview camera.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// TurnRate is the per-frame rotation in degrees while a direction flag is held.
	TurnRate = 1.0
	// LookSensitivity converts relative mouse motion to degrees.
	LookSensitivity = 0.25
	// SpeedStep is the speed change per wheel notch.
	SpeedStep = 0.25
	// MaxSpeed bounds the absolute speed.
	MaxSpeed = 10.0
)

// FlyCamera is a position with pitch and yaw in degrees. Angles are
// accumulated without wrapping.
type FlyCamera struct {
	X, Y, Z    float32
	Pitch, Yaw float32
	Speed      float32

	Up, Down, Left, Right bool
	Moving                bool

	FOV       float32
	Near, Far float32
}

// NewFlyCamera returns a camera above the middle of the terrain looking along +Z.
func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		X: 80, Y: 150, Z: 80,
		Pitch: 0,
		Yaw:   180,
		Speed: 1,
		FOV:   60,
		Near:  0.1,
		Far:   250,
	}
}

// Position returns the camera position.
func (c *FlyCamera) Position() mgl32.Vec3 {
	return mgl32.Vec3{c.X, c.Y, c.Z}
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() mgl32.Vec3 {
	p := float64(mgl32.DegToRad(c.Pitch))
	y := float64(mgl32.DegToRad(c.Yaw))
	dv := math.Cos(p)
	return mgl32.Vec3{
		float32(math.Sin(y) * dv),
		float32(-math.Sin(p)),
		float32(-math.Cos(y) * dv),
	}
}

// Look applies relative mouse motion. Screen y grows downward, so moving
// the pointer down pitches the view down.
func (c *FlyCamera) Look(dx, dy float32) {
	c.Yaw += LookSensitivity * dx
	c.Pitch += LookSensitivity * dy
}

// Step advances one frame: held direction flags rotate the camera and,
// while Moving, the position advances by Forward()*Speed.
func (c *FlyCamera) Step() {
	if c.Up {
		c.Pitch -= TurnRate
	}
	if c.Down {
		c.Pitch += TurnRate
	}
	if c.Left {
		c.Yaw -= TurnRate
	}
	if c.Right {
		c.Yaw += TurnRate
	}

	if c.Moving {
		f := c.Forward().Mul(c.Speed)
		c.X += f[0]
		c.Y += f[1]
		c.Z += f[2]
	}
}

// AddSpeed changes speed by d, clamped to [-MaxSpeed, MaxSpeed].
// Negative speed flies backwards.
func (c *FlyCamera) AddSpeed(d float32) {
	c.Speed = mgl32.Clamp(c.Speed+d, -MaxSpeed, MaxSpeed)
}

// ViewMatrix returns Rx(pitch)·Ry(yaw)·T(-position).
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(c.Pitch))
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(c.Yaw))
	t := mgl32.Translate3D(-c.X, -c.Y, -c.Z)
	return rx.Mul4(ry).Mul4(t)
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *FlyCamera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}
