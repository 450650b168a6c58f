package renderer

import (
	"Fisheye3D/internal/logger"
	"image"
	"image/draw"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type OpenGLRenderer struct {
	defaultShader        Shader
	defaultTextureID     uint32
	currentShaderProgram uint32 // Track bound shader to avoid unnecessary switches
	currentTextureID     uint32
	uniformCaches        map[uint32]*UniformCache
	width, height        int32
}

func (rend *OpenGLRenderer) Init(width, height int32, _ *glfw.Window) {
	if err := gl.Init(); err != nil {
		logger.Log.Error("OpenGL initialization failed", zap.Error(err))
		return
	}

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	rend.uniformCaches = make(map[uint32]*UniformCache)
	rend.currentTextureID = ^uint32(0)
	rend.width, rend.height = width, height
	gl.Viewport(0, 0, width, height)

	rend.defaultShader = InitShader()
	rend.defaultShader.Compile()

	// 1x1 white fallback so untextured materials sample plain diffuse color
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Pix[0], white.Pix[1], white.Pix[2], white.Pix[3] = 255, 255, 255, 255
	textureID, err := rend.CreateTextureFromImage(white)
	if err != nil {
		logger.Log.Error("Failed to create default texture", zap.Error(err))
	}
	rend.defaultTextureID = textureID

	logger.Log.Info("OpenGL render initialized",
		zap.Int32("width", width), zap.Int32("height", height))
}

func (rend *OpenGLRenderer) UploadModel(model *Model) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(model.InterleavedData)*4, gl.Ptr(model.InterleavedData), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(model.Faces)*4, gl.Ptr(model.Faces), gl.STATIC_DRAW)

	stride := int32(8 * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	model.VAO = vao
	model.VBO = vbo
	model.EBO = ebo
	model.UpdateModelMatrix()
}

func (rend *OpenGLRenderer) NewCubeTarget(resolution int32) CubeTarget {
	return NewOpenGLCubeTarget(resolution)
}

// Render draws a scene through a perspective camera into the active
// framebuffer. The capture and projection passes use RenderScene directly.
func (rend *OpenGLRenderer) Render(scene *Scene, camera *Camera) {
	rend.RenderScene(scene, camera.GetViewMatrix(), camera.GetProjectionMatrix(), camera.Position)
}

// RenderScene draws a scene with explicit view/projection matrices. It clears
// with the scene background first; callers sequence dependent passes by
// issuing them in order on the shared GL command stream.
func (rend *OpenGLRenderer) RenderScene(scene *Scene, view, projection mgl32.Mat4, viewPos mgl32.Vec3) {
	gl.ClearColor(scene.Background.X(), scene.Background.Y(), scene.Background.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthMask(true)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	// Culling : https://learnopengl.com/Advanced-OpenGL/Face-culling
	if FaceCullingEnabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	}

	viewProjection := projection.Mul4(view)

	var frustum Frustum
	if FrustumCullingEnabled {
		frustum = FrustumFromMatrix(viewProjection)
	}

	for _, model := range scene.Models {
		if !model.IsRenderable() {
			continue
		}

		if model.IsDirty {
			model.UpdateModelMatrix()
		}

		if FrustumCullingEnabled && !frustum.IntersectsSphere(model.BoundingSphereCenter, model.BoundingSphereRadius) {
			continue
		}

		var shader *Shader
		if model.Shader.IsValid() {
			shader = &model.Shader
			if !shader.isCompiled {
				shader.Compile()
			}
		} else {
			shader = &rend.defaultShader
		}

		if rend.currentShaderProgram != shader.program {
			shader.Use()
			rend.currentShaderProgram = shader.program
		}

		uc := rend.uniformCache(shader.program)
		uc.SetMat4("viewProjection", viewProjection)
		uc.SetMat4("model", model.ModelMatrix)
		uc.SetVec3("viewPos", viewPos.X(), viewPos.Y(), viewPos.Z())

		rend.setLightUniforms(uc, scene.Light)
		rend.setFogUniforms(uc, scene.Fog)

		if model.Material == nil {
			model.Material = DefaultMaterial
		}
		rend.setMaterialUniforms(uc, model)
		rend.bindTextures(uc, model)

		gl.BindVertexArray(model.VAO)
		gl.DrawElements(gl.TRIANGLES, int32(len(model.Faces)), gl.UNSIGNED_INT, nil)
		gl.BindVertexArray(0)
	}

	gl.Disable(gl.CULL_FACE)
}

func (rend *OpenGLRenderer) uniformCache(program uint32) *UniformCache {
	uc, ok := rend.uniformCaches[program]
	if !ok {
		uc = NewUniformCache(program)
		rend.uniformCaches[program] = uc
	}
	return uc
}

func (rend *OpenGLRenderer) setLightUniforms(uc *UniformCache, light *Light) {
	if light == nil {
		return
	}
	uc.SetVec3("light.position", light.Position[0], light.Position[1], light.Position[2])
	uc.SetVec3("light.color", light.Color[0], light.Color[1], light.Color[2])
	uc.SetFloat("light.intensity", light.Intensity)
}

func (rend *OpenGLRenderer) setFogUniforms(uc *UniformCache, fog *Fog) {
	if fog == nil {
		uc.SetBool("fogEnabled", false)
		return
	}
	uc.SetBool("fogEnabled", true)
	uc.SetVec3("fogColor", fog.Color[0], fog.Color[1], fog.Color[2])
	uc.SetFloat("fogNear", fog.Near)
	uc.SetFloat("fogFar", fog.Far)
}

func (rend *OpenGLRenderer) setMaterialUniforms(uc *UniformCache, model *Model) {
	uc.SetVec3("diffuseColor", model.Material.DiffuseColor[0], model.Material.DiffuseColor[1], model.Material.DiffuseColor[2])
	uc.SetVec3("specularColor", model.Material.SpecularColor[0], model.Material.SpecularColor[1], model.Material.SpecularColor[2])
	uc.SetFloat("shininess", model.Material.Shininess)
}

func (rend *OpenGLRenderer) bindTextures(uc *UniformCache, model *Model) {
	if model.Material.EnvMapID != 0 {
		// Environment-mapped models sample a cube map on unit 0. A dirty
		// material means the underlying target was swapped; force a rebind.
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, model.Material.EnvMapID)
		uc.SetInt("envMap", 0)
		model.Material.Dirty = false
		rend.currentTextureID = ^uint32(0)
		return
	}

	textureID := model.Material.TextureID
	if textureID == 0 {
		textureID = rend.defaultTextureID
	}
	if textureID != rend.currentTextureID || model.Material.Dirty {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, textureID)
		rend.currentTextureID = textureID
		model.Material.Dirty = false
	}
	uc.SetInt("textureSampler", 0)
}

func (rend *OpenGLRenderer) SetViewport(width, height int32) {
	rend.width, rend.height = width, height
	gl.Viewport(0, 0, width, height)
}

func (rend *OpenGLRenderer) CreateTextureFromImage(img image.Image) (uint32, error) {
	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	rgba, ok := img.(*image.RGBA)
	if !ok {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(rgba.Rect.Size().X), int32(rgba.Rect.Size().Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	return textureID, nil
}

func (rend *OpenGLRenderer) Cleanup(scene *Scene) {
	for _, model := range scene.Models {
		gl.DeleteVertexArrays(1, &model.VAO)
		gl.DeleteBuffers(1, &model.VBO)
		gl.DeleteBuffers(1, &model.EBO)
	}
	if rend.defaultTextureID != 0 {
		gl.DeleteTextures(1, &rend.defaultTextureID)
	}
}

func GenShader(source string, shaderType uint32) uint32 {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		logger.Log.Error("Failed to compile shader",
			zap.Uint32("type", shaderType), zap.String("log", log))
	}

	return shader
}

func GenShaderProgram(vertexShader, fragmentShader uint32) uint32 {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		logger.Log.Error("Failed to link program", zap.String("log", log))
	}
	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)
	return program
}

func CreateLight() *Light {
	return &Light{
		Position:  mgl32.Vec3{0.0, 1500.0, 0.0},
		Color:     mgl32.Vec3{1.0, 1.0, 1.0},
		Intensity: 1.0,
		Mode:      "point",
	}
}

// CreateDirectionalLight creates a directional light (like the sun). The
// default shader treats it as a distant point light.
func CreateDirectionalLight(direction mgl32.Vec3, color mgl32.Vec3, intensity float32) *Light {
	light := CreateLight()
	light.Mode = "directional"
	light.Position = direction.Normalize().Mul(-5000)
	light.Color = color
	light.Intensity = intensity
	return light
}

var _ Render = (*OpenGLRenderer)(nil)
