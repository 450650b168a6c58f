package loader

import (
	"math"
	"testing"
)

func TestLoadSphere(t *testing.T) {
	model, err := LoadSphere(16)
	if err != nil {
		t.Fatalf("LoadSphere failed: %v", err)
	}

	expectedVertices := 17 * 17
	if len(model.Vertices) != expectedVertices*3 {
		t.Errorf("Expected %d vertex floats, got %d", expectedVertices*3, len(model.Vertices))
	}
	if len(model.Faces)%3 != 0 {
		t.Errorf("Index count %d is not a whole number of triangles", len(model.Faces))
	}
}

func TestLoadSphereRejectsTooFewSegments(t *testing.T) {
	if _, err := LoadSphere(2); err == nil {
		t.Error("Expected an error for fewer than 3 segments")
	}
}

func TestLoadPlane(t *testing.T) {
	gridSize := 10
	model, err := LoadPlane(gridSize, 2)
	if err != nil {
		t.Fatalf("LoadPlane failed: %v", err)
	}

	if len(model.Vertices) != gridSize*gridSize*3 {
		t.Errorf("Expected %d vertex floats, got %d", gridSize*gridSize*3, len(model.Vertices))
	}
	if len(model.Faces) != (gridSize-1)*(gridSize-1)*6 {
		t.Errorf("Expected %d indices, got %d", (gridSize-1)*(gridSize-1)*6, len(model.Faces))
	}

	// Flat plane: all heights zero, all normals straight up
	for i := 1; i < len(model.Vertices); i += 3 {
		if model.Vertices[i] != 0 {
			t.Fatalf("Plane vertex %d has height %f", i/3, model.Vertices[i])
		}
	}
	for i := 0; i < len(model.Normals); i += 3 {
		if model.Normals[i] != 0 || model.Normals[i+1] != 1 || model.Normals[i+2] != 0 {
			t.Fatalf("Plane normal %d is not up: (%f,%f,%f)", i/3,
				model.Normals[i], model.Normals[i+1], model.Normals[i+2])
		}
	}
}

func TestLoadPlaneCentered(t *testing.T) {
	gridSize := 8
	spacing := float32(4)
	model, err := LoadPlane(gridSize, spacing)
	if err != nil {
		t.Fatalf("LoadPlane failed: %v", err)
	}

	half := float32(gridSize-1) * spacing / 2
	var minX, maxX float32 = math.MaxFloat32, -math.MaxFloat32
	for i := 0; i < len(model.Vertices); i += 3 {
		if model.Vertices[i] < minX {
			minX = model.Vertices[i]
		}
		if model.Vertices[i] > maxX {
			maxX = model.Vertices[i]
		}
	}
	if minX != -half || maxX != half {
		t.Errorf("Expected grid spanning [%f,%f], got [%f,%f]", -half, half, minX, maxX)
	}
}

func TestLoadPlaneRejectsDegenerateGrid(t *testing.T) {
	if _, err := LoadPlane(1, 1); err == nil {
		t.Error("Expected an error for a 1x1 grid")
	}
}

func TestLoadTerrain(t *testing.T) {
	model, err := LoadTerrain(16, 2, 5, 42)
	if err != nil {
		t.Fatalf("LoadTerrain failed: %v", err)
	}

	displaced := false
	for i := 1; i < len(model.Vertices); i += 3 {
		if model.Vertices[i] != 0 {
			displaced = true
		}
		if float64(model.Vertices[i]) > 10 || float64(model.Vertices[i]) < -10 {
			t.Fatalf("Terrain height %f far exceeds the amplitude", model.Vertices[i])
		}
	}
	if !displaced {
		t.Error("Terrain heights are all zero; noise not applied")
	}

	// Smooth normals must stay unit length
	for i := 0; i < len(model.Normals); i += 3 {
		x := float64(model.Normals[i])
		y := float64(model.Normals[i+1])
		z := float64(model.Normals[i+2])
		length := math.Sqrt(x*x + y*y + z*z)
		if math.Abs(length-1) > 1e-4 {
			t.Fatalf("Normal %d has length %f", i/3, length)
		}
	}
}

func TestLoadTerrainDeterministicBySeed(t *testing.T) {
	a, err := LoadTerrain(8, 1, 3, 7)
	if err != nil {
		t.Fatalf("LoadTerrain failed: %v", err)
	}
	b, err := LoadTerrain(8, 1, 3, 7)
	if err != nil {
		t.Fatalf("LoadTerrain failed: %v", err)
	}

	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatal("Same seed produced different terrain")
		}
	}

	c, err := LoadTerrain(8, 1, 3, 8)
	if err != nil {
		t.Fatalf("LoadTerrain failed: %v", err)
	}
	same := true
	for i := range a.Vertices {
		if a.Vertices[i] != c.Vertices[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Different seeds produced identical terrain")
	}
}

func TestRecalculateNormalsSingleTriangle(t *testing.T) {
	vertices := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 0, -1,
	}
	normals := RecalculateNormals(vertices, []int32{0, 1, 2})

	for i := 0; i < len(normals); i += 3 {
		if normals[i] != 0 || normals[i+1] != 1 || normals[i+2] != 0 {
			t.Fatalf("Expected up normal for a flat triangle, got (%f,%f,%f)",
				normals[i], normals[i+1], normals[i+2])
		}
	}
}

func TestRecalculateNormalsUnreferencedVertexFallsBackToUp(t *testing.T) {
	vertices := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 0, -1,
		5, 5, 5,
	}
	normals := RecalculateNormals(vertices, []int32{0, 1, 2})

	if normals[9] != 0 || normals[10] != 1 || normals[11] != 0 {
		t.Errorf("Unreferenced vertex should default to an up normal, got (%f,%f,%f)",
			normals[9], normals[10], normals[11])
	}
}
