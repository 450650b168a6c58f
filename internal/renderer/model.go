package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMaterial provides a basic material to fall back on
var DefaultMaterial = &Material{
	Name:          "default",
	DiffuseColor:  [3]float32{1.0, 1.0, 1.0},
	SpecularColor: [3]float32{1.0, 1.0, 1.0},
	Shininess:     32.0,
	Alpha:         1.0,
}

type Model struct {
	// HOT DATA - Accessed every frame in the render loop
	ModelMatrix mgl32.Mat4 // Transformation matrix
	Position    mgl32.Vec3 // Position in world space
	Scale       mgl32.Vec3 // Scale factors
	Rotation    mgl32.Quat // Rotation quaternion
	Material    *Material  // Material properties pointer
	VAO         uint32     // Vertex Array Object
	VBO         uint32     // Vertex Buffer Object
	EBO         uint32     // Element Buffer Object
	IsDirty     bool       // Needs matrix recalculation
	Visible     bool       // Skipped by the renderer when false

	// MEDIUM DATA - Conditional/periodic access
	BoundingSphereCenter mgl32.Vec3 // For frustum culling and picking
	BoundingSphereRadius float32    // For frustum culling and picking
	Shader               Shader     // Custom shader for this model
	parent               *Group     // Owning group, nil for free models

	// COLD DATA - Initialization only or rarely accessed
	Id              int       // Model identifier
	Name            string    // Model name
	Vertices        []float32 // Vertex position data
	Normals         []float32 // Normal vectors
	Faces           []int32   // Index data
	TextureCoords   []float32 // Texture coordinates
	InterleavedData []float32 // Combined vertex data
}

type Material struct {
	// HOT DATA - Accessed every render call
	DiffuseColor  [3]float32 // Base color for lighting
	SpecularColor [3]float32 // Specular highlight color
	Shininess     float32    // Specular exponent
	Alpha         float32    // Transparency (0 = transparent, 1 = opaque)
	TextureID     uint32     // 2D texture, 0 means the renderer's default
	EnvMapID      uint32     // Cube-map texture sampled as an environment map
	Dirty         bool       // Texture bindings changed, renderer must rebind

	// COLD DATA
	Name string
}

// IsRenderable reports whether the model and its owning group are visible.
func (m *Model) IsRenderable() bool {
	if !m.Visible {
		return false
	}
	if m.parent != nil && !m.parent.Visible {
		return false
	}
	return true
}

func (m *Model) Rotate(angleX, angleY, angleZ float32) {
	if m.Rotation == (mgl32.Quat{}) {
		m.Rotation = mgl32.QuatIdent()
	}
	rotationX := mgl32.QuatRotate(mgl32.DegToRad(angleX), mgl32.Vec3{1, 0, 0})
	rotationY := mgl32.QuatRotate(mgl32.DegToRad(angleY), mgl32.Vec3{0, 1, 0})
	rotationZ := mgl32.QuatRotate(mgl32.DegToRad(angleZ), mgl32.Vec3{0, 0, 1})
	m.Rotation = m.Rotation.Mul(rotationX).Mul(rotationY).Mul(rotationZ)
	m.IsDirty = true
}

func (m *Model) SetPosition(x, y, z float32) {
	m.Position = mgl32.Vec3{x, y, z}
	m.IsDirty = true
}

func (m *Model) SetScale(x, y, z float32) {
	m.Scale = mgl32.Vec3{x, y, z}
	m.IsDirty = true
}

func (m *Model) SetRotation(rotation mgl32.Quat) {
	m.Rotation = rotation
	m.IsDirty = true
}

// UpdateModelMatrix recomputes the TRS matrix and the bounding sphere.
// Matrices are multiplied right-to-left: scale first, then rotate, then
// translate.
func (m *Model) UpdateModelMatrix() {
	scaleMatrix := mgl32.Scale3D(m.Scale[0], m.Scale[1], m.Scale[2])
	rotationMatrix := m.Rotation.Mat4()
	translationMatrix := mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2])
	m.ModelMatrix = translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)
	m.CalculateBoundingSphere()
	m.IsDirty = false
}

func (m *Model) CalculateBoundingSphere() {
	numVertices := len(m.Vertices) / 3
	if numVertices == 0 {
		return
	}

	var center mgl32.Vec3
	for i := 0; i < numVertices; i++ {
		vertex := mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
		center = center.Add(ApplyModelTransformation(vertex, m.Position, m.Scale, m.Rotation))
	}
	center = center.Mul(1.0 / float32(numVertices))

	var maxDistanceSq float32
	for i := 0; i < numVertices; i++ {
		vertex := mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
		transformed := ApplyModelTransformation(vertex, m.Position, m.Scale, m.Rotation)
		distanceSq := transformed.Sub(center).LenSqr()
		if distanceSq > maxDistanceSq {
			maxDistanceSq = distanceSq
		}
	}

	m.BoundingSphereCenter = center
	m.BoundingSphereRadius = float32(math.Sqrt(float64(maxDistanceSq)))
}

func ApplyModelTransformation(vertex, position, scale mgl32.Vec3, rotation mgl32.Quat) mgl32.Vec3 {
	scaled := mgl32.Vec3{vertex[0] * scale[0], vertex[1] * scale[1], vertex[2] * scale[2]}
	rotated := rotation.Rotate(scaled)
	return rotated.Add(position)
}

func (m *Model) ensureMaterial() {
	if m.Material == nil || m.Material == DefaultMaterial {
		// Never mutate the shared default material
		m.Material = &Material{
			Name:          "default",
			DiffuseColor:  [3]float32{1.0, 1.0, 1.0},
			SpecularColor: [3]float32{1.0, 1.0, 1.0},
			Shininess:     32.0,
			Alpha:         1.0,
		}
	}
}

func (m *Model) SetDiffuseColor(r, g, b float32) {
	m.ensureMaterial()
	m.Material.DiffuseColor = [3]float32{r, g, b}
}

func (m *Model) SetSpecularColor(r, g, b float32) {
	m.ensureMaterial()
	m.Material.SpecularColor = [3]float32{r, g, b}
}

func (m *Model) SetShininess(shininess float32) {
	m.ensureMaterial()
	m.Material.Shininess = shininess
}

// SetEnvironmentMap binds a cube-map texture to this model's material and
// marks it dirty so the renderer rebinds on the next draw.
func (m *Model) SetEnvironmentMap(textureID uint32) {
	m.ensureMaterial()
	m.Material.EnvMapID = textureID
	m.Material.Dirty = true
}

// CreateModel builds a model from positions, normals, texture coordinates
// and triangle indices. Normals and texcoords may be nil; placeholders are
// interleaved in their place.
func CreateModel(vertices []float32, normals []float32, texCoords []float32, indices []int32) *Model {
	vertexCount := len(vertices) / 3
	interleavedData := make([]float32, 0, vertexCount*8)

	for i := 0; i < vertexCount; i++ {
		interleavedData = append(interleavedData, vertices[i*3], vertices[i*3+1], vertices[i*3+2])

		if texCoords != nil {
			interleavedData = append(interleavedData, texCoords[i*2], texCoords[i*2+1])
		} else {
			interleavedData = append(interleavedData, 0.0, 0.0)
		}

		if normals != nil {
			interleavedData = append(interleavedData, normals[i*3], normals[i*3+1], normals[i*3+2])
		} else {
			interleavedData = append(interleavedData, 0.0, 1.0, 0.0)
		}
	}

	model := &Model{
		Position:        mgl32.Vec3{0, 0, 0},
		Rotation:        mgl32.QuatIdent(),
		Scale:           mgl32.Vec3{1.0, 1.0, 1.0},
		Visible:         true,
		Vertices:        vertices,
		Normals:         normals,
		TextureCoords:   texCoords,
		Faces:           indices,
		InterleavedData: interleavedData,
	}
	model.UpdateModelMatrix()
	return model
}
