package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestModelRenderableWithGroupVisibility(t *testing.T) {
	model := CreateModel(nil, nil, nil, nil)
	if !model.IsRenderable() {
		t.Error("Free model should be renderable by default")
	}

	group := NewGroup("rig")
	group.Add(model)
	if !model.IsRenderable() {
		t.Error("Model in a visible group should be renderable")
	}

	group.Visible = false
	if model.IsRenderable() {
		t.Error("Model in a hidden group should not be renderable")
	}

	group.Visible = true
	model.Visible = false
	if model.IsRenderable() {
		t.Error("Hidden model should not be renderable regardless of its group")
	}
}

func TestSceneAddGroup(t *testing.T) {
	scene := &Scene{}
	group := NewGroup("props")
	a := CreateModel(nil, nil, nil, nil)
	b := CreateModel(nil, nil, nil, nil)
	group.Add(a)
	group.Add(b)

	scene.AddGroup(group)

	if len(scene.Models) != 2 {
		t.Fatalf("Expected 2 models in the scene, got %d", len(scene.Models))
	}
	if scene.Models[0] != a || scene.Models[1] != b {
		t.Error("Group models not attached in order")
	}
}

func TestSetEnvironmentMapMarksMaterialDirty(t *testing.T) {
	model := CreateModel(nil, nil, nil, nil)

	model.SetEnvironmentMap(42)

	if model.Material == nil {
		t.Fatal("SetEnvironmentMap should create a material")
	}
	if model.Material == DefaultMaterial {
		t.Fatal("SetEnvironmentMap must not mutate the shared default material")
	}
	if model.Material.EnvMapID != 42 {
		t.Errorf("Expected EnvMapID 42, got %d", model.Material.EnvMapID)
	}
	if !model.Material.Dirty {
		t.Error("Material should be flagged dirty after the bind changes")
	}
}

func TestUpdateModelMatrixBoundingSphere(t *testing.T) {
	model := CreateModel([]float32{
		-1, 0, 0,
		1, 0, 0,
	}, nil, nil, nil)
	model.SetPosition(10, 0, 0)
	model.SetScale(2, 2, 2)
	model.UpdateModelMatrix()

	if !approxEqualVec3(model.BoundingSphereCenter, mgl32.Vec3{10, 0, 0}, 1e-4) {
		t.Errorf("Expected bounding center (10,0,0), got %v", model.BoundingSphereCenter)
	}
	if !approxEqual(model.BoundingSphereRadius, 2, 1e-4) {
		t.Errorf("Expected bounding radius 2, got %v", model.BoundingSphereRadius)
	}
	if model.IsDirty {
		t.Error("UpdateModelMatrix should clear the dirty flag")
	}
}

func TestUpdateModelMatrixComposesTRS(t *testing.T) {
	model := CreateModel(nil, nil, nil, nil)
	model.SetPosition(1, 2, 3)
	model.SetScale(2, 2, 2)
	model.UpdateModelMatrix()

	transformed := model.ModelMatrix.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !approxEqualVec3(transformed, mgl32.Vec3{3, 2, 3}, 1e-4) {
		t.Errorf("Expected local (1,0,0) at (3,2,3), got %v", transformed)
	}
}
