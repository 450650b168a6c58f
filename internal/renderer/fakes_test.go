package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// fakeCubeTarget stands in for the GL-backed cube render target so capture
// and projector logic can run headless.
type fakeCubeTarget struct {
	resolution int32
	textureID  uint32
	disposed   int
	binds      int
	unbinds    int
	attached   []int
}

func (t *fakeCubeTarget) Bind()             { t.binds++ }
func (t *fakeCubeTarget) AttachFace(face int) {
	t.attached = append(t.attached, face)
}
func (t *fakeCubeTarget) Unbind()           { t.unbinds++ }
func (t *fakeCubeTarget) Resolution() int32 { return t.resolution }
func (t *fakeCubeTarget) TextureID() uint32 { return t.textureID }
func (t *fakeCubeTarget) Dispose()          { t.disposed++ }

// scenePass records the observable scene state at the moment of a
// RenderScene call, since captures mutate and restore it around the calls.
type scenePass struct {
	scene      *Scene
	background mgl32.Vec3
	fog        *Fog
	rigVisible map[*Model]bool
	view       mgl32.Mat4
	projection mgl32.Mat4
	viewPos    mgl32.Vec3
}

type fakeRenderer struct {
	passes      []scenePass
	uploaded    []*Model
	targets     []*fakeCubeTarget
	nextTexture uint32
}

func (f *fakeRenderer) RenderScene(scene *Scene, view, projection mgl32.Mat4, viewPos mgl32.Vec3) {
	visible := make(map[*Model]bool, len(scene.Models))
	for _, m := range scene.Models {
		visible[m] = m.IsRenderable()
	}
	f.passes = append(f.passes, scenePass{
		scene:      scene,
		background: scene.Background,
		fog:        scene.Fog,
		rigVisible: visible,
		view:       view,
		projection: projection,
		viewPos:    viewPos,
	})
}

func (f *fakeRenderer) UploadModel(model *Model) {
	f.uploaded = append(f.uploaded, model)
}

func (f *fakeRenderer) NewCubeTarget(resolution int32) CubeTarget {
	f.nextTexture++
	target := &fakeCubeTarget{resolution: resolution, textureID: f.nextTexture}
	f.targets = append(f.targets, target)
	return target
}

func (f *fakeRenderer) SetViewport(width, height int32) {}
