package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// OrthoCamera is an axis-aligned orthographic camera looking down -Z. It is
// used to draw the fisheye projection sphere so that it fills the viewport;
// no rotation support is needed for that.
type OrthoCamera struct {
	Position mgl32.Vec3
	Left     float32
	Right    float32
	Top      float32
	Bottom   float32
	Zoom     float32
	Near     float32
	Far      float32
}

func NewOrthoCamera(width, height float32) *OrthoCamera {
	cam := &OrthoCamera{
		Zoom: 1,
		Near: 0.01,
		Far:  1000,
	}
	cam.SetBounds(width, height)
	return cam
}

// SetBounds centers the frustum on the origin spanning width x height pixels.
func (c *OrthoCamera) SetBounds(width, height float32) {
	c.Left = -width / 2
	c.Right = width / 2
	c.Top = height / 2
	c.Bottom = -height / 2
}

func (c *OrthoCamera) GetProjectionMatrix() mgl32.Mat4 {
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return mgl32.Ortho(c.Left/zoom, c.Right/zoom, c.Bottom/zoom, c.Top/zoom, c.Near, c.Far)
}

func (c *OrthoCamera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(mgl32.Vec3{0, 0, -1}), mgl32.Vec3{0, 1, 0})
}

// PointerRay builds a world-space ray through a pointer position given in
// normalized device coordinates ([-1,1] on both axes, +Y up). Orthographic
// rays are parallel: the pointer offsets the origin, the direction is the
// camera forward.
func (c *OrthoCamera) PointerRay(pointer mgl32.Vec2) Ray {
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	halfW := (c.Right - c.Left) / 2 / zoom
	halfH := (c.Top - c.Bottom) / 2 / zoom
	origin := c.Position.Add(mgl32.Vec3{pointer.X() * halfW, pointer.Y() * halfH, 0})
	return Ray{
		Origin:    origin,
		Direction: mgl32.Vec3{0, 0, -1},
	}
}
