package renderer

import (
	"image"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type LightType int

var FrustumCullingEnabled bool = false
var FaceCullingEnabled bool = false
var Debug bool = false
var DepthTestEnabled bool = true

const (
	STATIC_LIGHT LightType = iota
	DYNAMIC_LIGHT
)

type Light struct {
	Position   mgl32.Vec3
	Color      mgl32.Vec3
	Intensity  float32
	Type       LightType // "static", "dynamic"
	Mode       string    // "directional", "point"
	Calculated bool
}

// Fog is a linear distance fog applied by the default shader. A nil Fog on a
// scene disables fog entirely.
type Fog struct {
	Color mgl32.Vec3
	Near  float32
	Far   float32
}

// Scene is the renderable world: a flat model list plus the global state a
// cubemap capture must be able to substitute and restore (background, fog).
type Scene struct {
	Models     []*Model
	Background mgl32.Vec3
	Fog        *Fog
	Light      *Light
}

// Group is a container node with a visibility toggle. Models parented to an
// invisible group are skipped by the renderer.
type Group struct {
	Name    string
	Visible bool
	Models  []*Model
}

func NewGroup(name string) *Group {
	return &Group{Name: name, Visible: true}
}

func (g *Group) Add(model *Model) {
	model.parent = g
	g.Models = append(g.Models, model)
}

func (s *Scene) AddModel(model *Model) {
	s.Models = append(s.Models, model)
}

// AddGroup attaches a group's models to the scene. The group keeps ownership
// of its visibility toggle.
func (s *Scene) AddGroup(group *Group) {
	s.Models = append(s.Models, group.Models...)
}

// SceneRenderer is the slice of the backend that the cubemap capture and the
// fisheye projector depend on. Kept narrow so tests can stub it out.
type SceneRenderer interface {
	// RenderScene draws the scene with explicit view/projection matrices into
	// whatever framebuffer is currently bound. It clears color and depth with
	// the scene background first.
	RenderScene(scene *Scene, view, projection mgl32.Mat4, viewPos mgl32.Vec3)
	// UploadModel creates GPU buffers for a model so RenderScene can draw it.
	UploadModel(model *Model)
	// NewCubeTarget allocates a cube render target owned by the caller.
	NewCubeTarget(resolution int32) CubeTarget
	SetViewport(width, height int32)
}

type Render interface {
	SceneRenderer
	Init(width, height int32, window *glfw.Window)
	Render(scene *Scene, camera *Camera)
	CreateTextureFromImage(img image.Image) (uint32, error)
	Cleanup(scene *Scene)
}
