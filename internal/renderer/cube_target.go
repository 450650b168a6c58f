package renderer

import (
	"Fisheye3D/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// CubeTarget is an off-screen render target with a cube-map color texture.
// One face at a time is attached for rendering. An instance is exclusively
// owned by a single capture or projector and must be disposed when replaced.
type CubeTarget interface {
	// Bind saves the current viewport, binds the target framebuffer and sets
	// the viewport to resolution x resolution.
	Bind()
	// AttachFace attaches face i (CubeFacePosX..CubeFaceNegZ) as the color
	// attachment. Only valid between Bind and Unbind.
	AttachFace(face int)
	// Unbind restores the default framebuffer and the saved viewport.
	Unbind()
	Resolution() int32
	TextureID() uint32
	Dispose()
}

// OpenGLCubeTarget backs CubeTarget with an FBO, an RGBA cube-map color
// texture and a shared depth renderbuffer.
type OpenGLCubeTarget struct {
	fbo        uint32
	depthRBO   uint32
	textureID  uint32
	resolution int32
	prevView   [4]int32
}

func NewOpenGLCubeTarget(resolution int32) *OpenGLCubeTarget {
	t := &OpenGLCubeTarget{resolution: resolution}

	gl.GenTextures(1, &t.textureID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.textureID)
	for face := 0; face < CubeFaceCount; face++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), 0, gl.RGBA,
			resolution, resolution, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	gl.GenRenderbuffers(1, &t.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, resolution, resolution)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depthRBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0,
		gl.TEXTURE_CUBE_MAP_POSITIVE_X, t.textureID, 0)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		logger.Log.Error("Cube render target framebuffer incomplete",
			zap.Uint32("status", status),
			zap.Int32("resolution", resolution))
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	logger.Log.Debug("Cube render target created",
		zap.Int32("resolution", resolution),
		zap.Uint32("texture", t.textureID))
	return t
}

func (t *OpenGLCubeTarget) Bind() {
	gl.GetIntegerv(gl.VIEWPORT, &t.prevView[0])
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, t.resolution, t.resolution)
}

func (t *OpenGLCubeTarget) AttachFace(face int) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0,
		gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), t.textureID, 0)
}

func (t *OpenGLCubeTarget) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(t.prevView[0], t.prevView[1], t.prevView[2], t.prevView[3])
}

func (t *OpenGLCubeTarget) Resolution() int32 {
	return t.resolution
}

func (t *OpenGLCubeTarget) TextureID() uint32 {
	return t.textureID
}

func (t *OpenGLCubeTarget) Dispose() {
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.DeleteRenderbuffers(1, &t.depthRBO)
	gl.DeleteTextures(1, &t.textureID)
	t.fbo, t.depthRBO, t.textureID = 0, 0, 0
}
