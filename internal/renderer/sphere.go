package renderer

import (
	"math"
)

// CreateSphere builds a unit-radius latitude/longitude sphere with
// segments x segments tessellation. Normals equal positions on a unit
// sphere, which is what environment-mapped materials rely on.
func CreateSphere(segments int) *Model {
	if segments < 3 {
		segments = 3
	}

	rings := segments
	sectors := segments

	vertices := make([]float32, 0, (rings+1)*(sectors+1)*3)
	normals := make([]float32, 0, (rings+1)*(sectors+1)*3)
	texCoords := make([]float32, 0, (rings+1)*(sectors+1)*2)
	indices := make([]int32, 0, rings*sectors*6)

	for ring := 0; ring <= rings; ring++ {
		phi := math.Pi * float64(ring) / float64(rings)
		y := math.Cos(phi)
		ringRadius := math.Sin(phi)

		for sector := 0; sector <= sectors; sector++ {
			theta := 2 * math.Pi * float64(sector) / float64(sectors)
			x := ringRadius * math.Cos(theta)
			z := ringRadius * math.Sin(theta)

			vertices = append(vertices, float32(x), float32(y), float32(z))
			normals = append(normals, float32(x), float32(y), float32(z))
			texCoords = append(texCoords,
				float32(sector)/float32(sectors),
				float32(ring)/float32(rings))
		}
	}

	stride := int32(sectors + 1)
	for ring := 0; ring < rings; ring++ {
		for sector := 0; sector < sectors; sector++ {
			topLeft := int32(ring)*stride + int32(sector)
			topRight := topLeft + 1
			bottomLeft := topLeft + stride
			bottomRight := bottomLeft + 1

			indices = append(indices, topLeft, bottomLeft, bottomRight)
			indices = append(indices, topLeft, bottomRight, topRight)
		}
	}

	return CreateModel(vertices, normals, texCoords, indices)
}
