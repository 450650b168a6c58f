package renderer

import (
	"Fisheye3D/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// CaptureConfig configures a CubemapCapture.
type CaptureConfig struct {
	Resolution int32 `json:"resolution"`
	// Near/Far clip planes of the six face cameras.
	Near float32 `json:"near"`
	Far  float32 `json:"far"`
	// FrameBudget limits how many captures run; <= 0 means unbounded.
	// A budget of 1 gives a static reflection rendered once.
	FrameBudget int `json:"frameBudget"`
	// Optional substitutes applied to the scene only while capturing.
	OverrideBackground *mgl32.Vec3 `json:"-"`
	OverrideFog        *Fog        `json:"-"`
}

func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		Resolution: 512,
		Near:       0.1,
		Far:        10000,
	}
}

// CubemapCapture renders a scene into a cube-map texture from the position of
// its rig, for use as a reflection or environment map. The rig is hidden
// during the capture so its own geometry never shows up in the reflection.
type CubemapCapture struct {
	Rig    *Group
	Camera *CubeCamera
	Target CubeTarget

	rend           SceneRenderer
	scene          *Scene
	frameBudget    int
	framesRendered int
	override       CaptureConfig
}

func NewCubemapCapture(rend SceneRenderer, scene *Scene, config CaptureConfig) *CubemapCapture {
	if config.Resolution <= 0 {
		config.Resolution = DefaultCaptureConfig().Resolution
	}
	c := &CubemapCapture{
		Rig:         NewGroup("cubemap-capture"),
		Camera:      NewCubeCamera(config.Near, config.Far),
		Target:      rend.NewCubeTarget(config.Resolution),
		rend:        rend,
		scene:       scene,
		frameBudget: config.FrameBudget,
		override:    config,
	}
	logger.Log.Info("Cubemap capture created",
		zap.Int32("resolution", config.Resolution),
		zap.Int("frameBudget", config.FrameBudget))
	return c
}

// TextureID returns the cube-map texture. Its contents are only valid after
// at least one Update.
func (c *CubemapCapture) TextureID() uint32 {
	return c.Target.TextureID()
}

// FramesRendered reports how many captures have run.
func (c *CubemapCapture) FramesRendered() int {
	return c.framesRendered
}

// SetPosition moves the capture rig.
func (c *CubemapCapture) SetPosition(position mgl32.Vec3) {
	c.Camera.Position = position
}

// Update renders all six cube faces from the rig's current transform. While
// capturing, the rig is hidden and the configured background/fog substitutes
// are applied; everything is restored before returning, so the scene's
// visible state is unchanged. Once the frame budget is exhausted, Update is
// a no-op and the texture keeps its last captured contents.
func (c *CubemapCapture) Update() {
	if c.frameBudget > 0 && c.framesRendered >= c.frameBudget {
		return
	}

	var unwind Unwind
	defer unwind.Unwind()

	rigVisible := c.Rig.Visible
	c.Rig.Visible = false
	unwind.Add(func() { c.Rig.Visible = rigVisible })

	if c.override.OverrideBackground != nil {
		prev := c.scene.Background
		c.scene.Background = *c.override.OverrideBackground
		unwind.Add(func() { c.scene.Background = prev })
	}
	if c.override.OverrideFog != nil {
		prev := c.scene.Fog
		c.scene.Fog = c.override.OverrideFog
		unwind.Add(func() { c.scene.Fog = prev })
	}

	c.renderFaces()
	c.framesRendered++
}

func (c *CubemapCapture) renderFaces() {
	c.Target.Bind()
	defer c.Target.Unbind()

	projection := c.Camera.GetProjectionMatrix()
	for face := 0; face < CubeFaceCount; face++ {
		c.Target.AttachFace(face)
		c.rend.RenderScene(c.scene, c.Camera.FaceView(face), projection, c.Camera.Position)
	}
}
