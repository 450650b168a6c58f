package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Cube face order matches GL_TEXTURE_CUBE_MAP_POSITIVE_X + i.
const (
	CubeFacePosX = iota
	CubeFaceNegX
	CubeFacePosY
	CubeFaceNegY
	CubeFacePosZ
	CubeFaceNegZ
	CubeFaceCount
)

// cubeFaceDirs and cubeFaceUps are the canonical GL cubemap face bases.
var cubeFaceDirs = [CubeFaceCount]mgl32.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

var cubeFaceUps = [CubeFaceCount]mgl32.Vec3{
	{0, -1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
	{0, -1, 0}, {0, -1, 0},
}

// CubeCamera is the virtual six-face camera used to fill a cube render
// target. Rotating the camera rotates all six faces together, which is what
// the fisheye projector relies on when it copies the real camera's transform.
type CubeCamera struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat

	Near float32
	Far  float32

	projection mgl32.Mat4
}

func NewCubeCamera(near, far float32) *CubeCamera {
	cam := &CubeCamera{
		Rotation: mgl32.QuatIdent(),
		Near:     near,
		Far:      far,
	}
	cam.projection = mgl32.Perspective(mgl32.DegToRad(90), 1.0, near, far)
	return cam
}

func (c *CubeCamera) SetTransform(position mgl32.Vec3, rotation mgl32.Quat) {
	c.Position = position
	c.Rotation = rotation
}

func (c *CubeCamera) GetProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// FaceView returns the view matrix for one cube face, with the camera's own
// rotation composed in.
func (c *CubeCamera) FaceView(face int) mgl32.Mat4 {
	dir := c.Rotation.Rotate(cubeFaceDirs[face])
	up := c.Rotation.Rotate(cubeFaceUps[face])
	return mgl32.LookAtV(c.Position, c.Position.Add(dir), up)
}

// NormalMatrix is the world-space rotation of the camera as a 3x3 matrix,
// used to carry directions from camera space into world space.
func (c *CubeCamera) NormalMatrix() mgl32.Mat3 {
	return c.Rotation.Mat4().Mat3()
}
