package renderer

import (
	"math"

	"Fisheye3D/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// The orthographic lens camera keeps a fixed zoom; the projection sphere's
// radius is coupled to the viewport diagonal so the sphere always fills the
// view regardless of aspect ratio.
const lensZoomLevel = 100

// FisheyeConfig configures a FisheyeProjector.
type FisheyeConfig struct {
	// Resolution is the cube-capture face edge length in texels. Independent
	// of the viewport size.
	Resolution int32 `json:"resolution"`
	// Segments is the tessellation density of the projection sphere. A
	// quality/performance trade-off only.
	Segments int `json:"segments"`
	// Zoom in [0,1] compresses the lens field of view.
	Zoom float32 `json:"zoom"`
}

func DefaultFisheyeConfig() FisheyeConfig {
	return FisheyeConfig{
		Resolution: 1024,
		Segments:   64,
		Zoom:       0,
	}
}

// FisheyeProjector renders a scene through a spherical lens: each frame it
// captures the scene into a cube map from the real camera's position, then
// draws a sphere textured with that cube map through an orthographic camera,
// producing a 360-degree fisheye view. Because the displayed image is not a
// pinhole projection, picking must go through ComputeRaycastRayDirection
// instead of the usual camera ray.
type FisheyeProjector struct {
	Resolution int32
	Segments   int
	// Zoom is mutable; call Resize afterwards since the sphere radius
	// depends on it.
	Zoom float32

	rend      SceneRenderer
	target    CubeTarget
	cube      *CubeCamera
	sphere    *Model
	ortho     *OrthoCamera
	lensScene *Scene

	width, height float32
	sphereRadius  float32

	yawFlip mgl32.Quat
}

func NewFisheyeProjector(rend SceneRenderer, config FisheyeConfig) *FisheyeProjector {
	defaults := DefaultFisheyeConfig()
	if config.Resolution <= 0 {
		config.Resolution = defaults.Resolution
	}
	if config.Segments <= 0 {
		config.Segments = defaults.Segments
	}
	config.Zoom = mgl32.Clamp(config.Zoom, 0, 1)

	p := &FisheyeProjector{
		Resolution: config.Resolution,
		Segments:   config.Segments,
		Zoom:       config.Zoom,
		rend:       rend,
		cube:       NewCubeCamera(0.1, 10000),
		ortho:      NewOrthoCamera(1024, 768),
		yawFlip:    mgl32.QuatRotate(math.Pi, mgl32.Vec3{0, 1, 0}),
	}

	p.target = rend.NewCubeTarget(p.Resolution)

	p.sphere = CreateSphere(p.Segments)
	p.sphere.Name = "fisheye-lens"
	p.sphere.Shader = InitEnvMapShader()
	p.sphere.SetEnvironmentMap(p.target.TextureID())
	rend.UploadModel(p.sphere)

	p.ortho.Zoom = lensZoomLevel
	p.lensScene = &Scene{}
	p.lensScene.AddModel(p.sphere)

	// Populate all derived fields before first use
	p.Resize(1024, 768)

	logger.Log.Info("Fisheye projector created",
		zap.Int32("resolution", p.Resolution),
		zap.Int("segments", p.Segments),
		zap.Float32("zoom", p.Zoom))
	return p
}

// SphereRadius returns the projection sphere's current world radius.
func (p *FisheyeProjector) SphereRadius() float32 {
	return p.sphereRadius
}

// Resize recomputes the orthographic frustum and the projection sphere
// radius for a new viewport. Call it on every viewport change and after
// changing Zoom.
func (p *FisheyeProjector) Resize(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	p.width, p.height = width, height

	p.ortho.SetBounds(width, height)
	p.ortho.Zoom = lensZoomLevel

	diagonal := float32(math.Sqrt(float64(width*width + height*height)))
	p.sphereRadius = diagonal / 100 * (0.5 + p.Zoom/2)
	p.sphere.SetScale(p.sphereRadius, p.sphereRadius, p.sphereRadius)

	// Keep the camera in front of the sphere so pointer rays start outside it
	p.ortho.Position = mgl32.Vec3{0, 0, p.sphereRadius * 2}
	p.ortho.Near = 0.01
	p.ortho.Far = p.sphereRadius * 4
}

// SetResolution swaps the cube render target for one at the new face
// resolution. A no-op when unchanged. The old target is disposed before the
// replacement is installed, and the sphere material is rebound to the new
// texture.
func (p *FisheyeProjector) SetResolution(resolution int32) {
	if resolution == p.Resolution || resolution <= 0 {
		return
	}

	p.target.Dispose()
	p.target = p.rend.NewCubeTarget(resolution)
	p.Resolution = resolution
	p.sphere.SetEnvironmentMap(p.target.TextureID())

	logger.Log.Info("Fisheye capture resolution changed",
		zap.Int32("resolution", resolution))
}

// Render runs the two-pass pipeline: copy the source camera's transform onto
// the internal cube camera (with a 180-degree yaw offset compensating for
// the capture camera's orientation relative to the sphere's sampling
// direction), capture all six faces of the scene, then draw the projection
// sphere through the orthographic camera into the currently bound target.
// The passes are issued sequentially on the same command stream, so the
// projection pass always samples the fresh capture.
func (p *FisheyeProjector) Render(rend SceneRenderer, scene *Scene, camera *Camera) {
	rotation := camera.Orientation().Mul(p.yawFlip)
	p.cube.SetTransform(camera.Position, rotation)

	p.target.Bind()
	projection := p.cube.GetProjectionMatrix()
	for face := 0; face < CubeFaceCount; face++ {
		p.target.AttachFace(face)
		rend.RenderScene(scene, p.cube.FaceView(face), projection, p.cube.Position)
	}
	p.target.Unbind()

	rend.RenderScene(p.lensScene, p.ortho.GetViewMatrix(), p.ortho.GetProjectionMatrix(), p.ortho.Position)
}

// ComputeRaycastRayDirection turns a pointer position (normalized device
// coordinates) into a world-space pick ray consistent with the distorted
// image. Returns false, leaving the ray untouched, when the pointer misses
// the projected disk.
//
// The inversion mirrors the environment-map sampling step by step: reflect
// the fixed forward vector off the sphere normal hit by the pointer ray,
// undo the sampler's horizontal flip, carry the direction into world space
// with the capture camera's normal matrix and negate. The sequence is a
// sampling convention, not derivable algebra; do not simplify it without
// visual regression against the rendered image.
func (p *FisheyeProjector) ComputeRaycastRayDirection(ray *Ray, pointer mgl32.Vec2) bool {
	pickRay := p.ortho.PointerRay(pointer)

	hit, _, _, normal := RayIntersectSphere(pickRay, mgl32.Vec3{}, p.sphereRadius)
	if !hit {
		return false
	}

	forward := mgl32.Vec3{0, 0, 1}
	reflected := forward.Sub(normal.Mul(2 * forward.Dot(normal)))
	reflected[0] = -reflected[0]

	world := p.cube.NormalMatrix().Mul3x1(reflected)

	ray.Origin = p.cube.Position
	ray.Direction = world.Mul(-1).Normalize()
	return true
}
