// Package graphics holds the camera math feeding the section culler.
package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera handles the view and projection matrices
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32 // degrees, 0 looks down +X
	Pitch    float32 // degrees, clamped to [-89, 89]

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		AspectRatio: float32(width) / float32(height),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
	}
}

// Rotate adds offsets in degrees, keeping the pitch away from the poles.
func (c *Camera) Rotate(yaw, pitch float32) {
	c.Yaw += yaw
	c.Pitch = mgl32.Clamp(c.Pitch+pitch, -89, 89)
}

func (c *Camera) GetFrontVector() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(c.Yaw))
	pt := float64(mgl32.DegToRad(c.Pitch))
	fx := float32(math.Cos(y) * math.Cos(pt))
	fy := float32(math.Sin(pt))
	fz := float32(math.Sin(y) * math.Cos(pt))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	target := c.Position.Add(c.GetFrontVector())
	return mgl32.LookAtV(c.Position, target, mgl32.Vec3{0, 1, 0})
}

// Frustum returns the culling volume for the current view.
func (c *Camera) Frustum() *Frustum {
	return NewFrustum(c.GetProjectionMatrix().Mul4(c.GetViewMatrix()))
}
