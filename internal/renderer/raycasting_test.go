package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRayIntersectSphereHit(t *testing.T) {
	ray := Ray{
		Origin:    mgl32.Vec3{0, 0, 10},
		Direction: mgl32.Vec3{0, 0, -1},
	}

	hit, distance, point, normal := RayIntersectSphere(ray, mgl32.Vec3{}, 2)
	if !hit {
		t.Fatal("Expected a hit on a sphere straight ahead")
	}
	if !approxEqual(distance, 8, 1e-5) {
		t.Errorf("Expected hit distance 8, got %v", distance)
	}
	if !approxEqualVec3(point, mgl32.Vec3{0, 0, 2}, 1e-5) {
		t.Errorf("Expected hit point (0,0,2), got %v", point)
	}
	if !approxEqualVec3(normal, mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Errorf("Expected unit normal (0,0,1), got %v", normal)
	}
}

func TestRayIntersectSphereMiss(t *testing.T) {
	ray := Ray{
		Origin:    mgl32.Vec3{0, 5, 10},
		Direction: mgl32.Vec3{0, 0, -1},
	}

	if hit, _, _, _ := RayIntersectSphere(ray, mgl32.Vec3{}, 2); hit {
		t.Error("Expected a miss for a ray passing above the sphere")
	}
}

func TestRayIntersectSphereBehindOrigin(t *testing.T) {
	ray := Ray{
		Origin:    mgl32.Vec3{0, 0, 10},
		Direction: mgl32.Vec3{0, 0, 1},
	}

	if hit, _, _, _ := RayIntersectSphere(ray, mgl32.Vec3{}, 2); hit {
		t.Error("Expected a miss for a sphere behind the ray origin")
	}
}

func TestRayIntersectSphereFromInside(t *testing.T) {
	ray := Ray{
		Origin:    mgl32.Vec3{0, 0, 0},
		Direction: mgl32.Vec3{0, 0, -1},
	}

	hit, distance, _, _ := RayIntersectSphere(ray, mgl32.Vec3{}, 2)
	if !hit {
		t.Fatal("Expected a hit from inside the sphere")
	}
	if !approxEqual(distance, 2, 1e-5) {
		t.Errorf("Expected exit distance 2, got %v", distance)
	}
}

func TestRayIntersectModelUsesBoundingSphere(t *testing.T) {
	model := CreateModel([]float32{
		-1, -1, 0,
		1, -1, 0,
		0, 1, 0,
	}, nil, nil, []int32{0, 1, 2})
	model.SetPosition(0, 0, -5)
	model.UpdateModelMatrix()

	ray := Ray{
		Origin:    mgl32.Vec3{0, 0, 10},
		Direction: mgl32.Vec3{0, 0, -1},
	}
	if hit, _, _ := RayIntersectModel(ray, model); !hit {
		t.Error("Expected the ray through the model center to hit its bounding sphere")
	}

	miss := Ray{
		Origin:    mgl32.Vec3{50, 0, 10},
		Direction: mgl32.Vec3{0, 0, -1},
	}
	if hit, _, _ := RayIntersectModel(miss, model); hit {
		t.Error("Expected a miss far from the model")
	}
}

func TestRayIntersectTriangle(t *testing.T) {
	v0 := mgl32.Vec3{-1, -1, 0}
	v1 := mgl32.Vec3{1, -1, 0}
	v2 := mgl32.Vec3{0, 1, 0}

	ray := Ray{
		Origin:    mgl32.Vec3{0, 0, 5},
		Direction: mgl32.Vec3{0, 0, -1},
	}
	hit, distance, point := RayIntersectTriangle(ray, v0, v1, v2)
	if !hit {
		t.Fatal("Expected a hit on the triangle")
	}
	if !approxEqual(distance, 5, 1e-5) {
		t.Errorf("Expected hit distance 5, got %v", distance)
	}
	if !approxEqualVec3(point, mgl32.Vec3{0, 0, 0}, 1e-5) {
		t.Errorf("Expected hit point at the origin, got %v", point)
	}

	outside := Ray{
		Origin:    mgl32.Vec3{5, 5, 5},
		Direction: mgl32.Vec3{0, 0, -1},
	}
	if hit, _, _ := RayIntersectTriangle(outside, v0, v1, v2); hit {
		t.Error("Expected a miss outside the triangle")
	}

	parallel := Ray{
		Origin:    mgl32.Vec3{0, 0, 5},
		Direction: mgl32.Vec3{1, 0, 0},
	}
	if hit, _, _ := RayIntersectTriangle(parallel, v0, v1, v2); hit {
		t.Error("Expected a miss for a ray parallel to the triangle plane")
	}
}

func TestScreenToRayCenter(t *testing.T) {
	camera := NewDefaultCamera(600, 800)

	ray := ScreenToRay(*camera, 400, 300, 800, 600)
	if ray.Origin != camera.Position {
		t.Errorf("Expected ray origin at the camera position, got %v", ray.Origin)
	}
	if !approxEqualVec3(ray.Direction, camera.Front, 1e-4) {
		t.Errorf("Expected center screen ray along %v, got %v", camera.Front, ray.Direction)
	}
}
