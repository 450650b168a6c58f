package loader

import (
	"Fisheye3D/internal/logger"
	"Fisheye3D/internal/renderer"
	"errors"
	"math"

	"github.com/aquilax/go-perlin"
	"go.uber.org/zap"
)

// LoadSphere builds a unit-radius sphere model with the given tessellation.
func LoadSphere(segments int) (*renderer.Model, error) {
	if segments < 3 {
		return nil, errors.New("segments must be at least 3")
	}
	return renderer.CreateSphere(segments), nil
}

// LoadPlane builds a flat grid in the XZ plane.
func LoadPlane(gridSize int, gridSpacing float32) (*renderer.Model, error) {
	if gridSize < 2 {
		return nil, errors.New("gridSize must be at least 2")
	}
	return buildGrid(gridSize, gridSpacing, nil), nil
}

// LoadTerrain builds a grid displaced with Perlin noise, centered on the
// origin. Amplitude scales the height field.
func LoadTerrain(gridSize int, gridSpacing float32, amplitude float32, seed int64) (*renderer.Model, error) {
	if gridSize < 2 {
		return nil, errors.New("gridSize must be at least 2")
	}

	noise := perlin.NewPerlin(2, 2, 3, seed)
	scale := 0.08
	height := func(x, z int) float32 {
		return amplitude * float32(noise.Noise2D(float64(x)*scale, float64(z)*scale))
	}
	model := buildGrid(gridSize, gridSpacing, height)

	logger.Log.Info("Terrain created",
		zap.Int("gridSize", gridSize),
		zap.Float32("amplitude", amplitude),
		zap.Int("triangles", len(model.Faces)/3))
	return model, nil
}

func buildGrid(gridSize int, gridSpacing float32, height func(x, z int) float32) *renderer.Model {
	vertices := make([]float32, 0, gridSize*gridSize*3)
	indices := make([]int32, 0, (gridSize-1)*(gridSize-1)*6)
	texCoords := make([]float32, 0, gridSize*gridSize*2)

	half := float32(gridSize-1) * gridSpacing / 2

	for x := 0; x < gridSize; x++ {
		for z := 0; z < gridSize; z++ {
			var y float32
			if height != nil {
				y = height(x, z)
			}
			vertices = append(vertices,
				float32(x)*gridSpacing-half,
				y,
				float32(z)*gridSpacing-half)
			texCoords = append(texCoords,
				float32(x)/float32(gridSize-1),
				float32(z)/float32(gridSize-1))
		}
	}

	for x := 0; x < gridSize-1; x++ {
		for z := 0; z < gridSize-1; z++ {
			topLeft := int32(x*gridSize + z)
			topRight := topLeft + 1
			bottomLeft := int32((x+1)*gridSize + z)
			bottomRight := bottomLeft + 1

			indices = append(indices, topLeft, bottomLeft, bottomRight, topLeft, bottomRight, topRight)
		}
	}

	normals := RecalculateNormals(vertices, indices)
	return renderer.CreateModel(vertices, normals, texCoords, indices)
}

// RecalculateNormals computes smooth per-vertex normals by averaging face
// normals over shared vertices.
func RecalculateNormals(vertices []float32, faces []int32) []float32 {
	normals := make([]float32, len(vertices))

	for i := 0; i+2 < len(faces); i += 3 {
		i0, i1, i2 := faces[i]*3, faces[i+1]*3, faces[i+2]*3

		ax := vertices[i1] - vertices[i0]
		ay := vertices[i1+1] - vertices[i0+1]
		az := vertices[i1+2] - vertices[i0+2]
		bx := vertices[i2] - vertices[i0]
		by := vertices[i2+1] - vertices[i0+1]
		bz := vertices[i2+2] - vertices[i0+2]

		// Cross product a x b
		nx := ay*bz - az*by
		ny := az*bx - ax*bz
		nz := ax*by - ay*bx

		for _, idx := range []int32{i0, i1, i2} {
			normals[idx] += nx
			normals[idx+1] += ny
			normals[idx+2] += nz
		}
	}

	for i := 0; i+2 < len(normals); i += 3 {
		lenSq := normals[i]*normals[i] + normals[i+1]*normals[i+1] + normals[i+2]*normals[i+2]
		if lenSq == 0 {
			normals[i+1] = 1
			continue
		}
		inv := 1 / float32(math.Sqrt(float64(lenSq)))
		normals[i] *= inv
		normals[i+1] *= inv
		normals[i+2] *= inv
	}

	return normals
}
