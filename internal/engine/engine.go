package engine

import (
	"Fisheye3D/internal/behaviour"
	"Fisheye3D/internal/logger"
	"Fisheye3D/internal/renderer"
	"runtime"
	"time"

	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Click debouncing: press and release within this window and travel count as
// a pick, anything longer or farther is a camera drag.
const (
	clickMaxDuration = 250 * time.Millisecond
	clickMaxTravel   = 5.0 // pixels
)

var lastX, lastY float64
var firstMouse bool = true

// App owns the window, the render loop and the input glue. The fisheye
// projector is optional: without it the scene renders through the camera
// directly.
type App struct {
	Width  int32
	Height int32
	Title  string

	Scene   *renderer.Scene
	Camera  *renderer.Camera
	Fisheye *renderer.FisheyeProjector

	EnableCameraInput bool

	rendererAPI      renderer.Render
	window           *glfw.Window
	fisheyeConfig    *renderer.FisheyeConfig
	frameTrackId     int
	onRenderCallback func(deltaTime float64)
	onPickCallback   func(model *renderer.Model, point mgl.Vec3)

	pressTime time.Time
	pressX    float64
	pressY    float64
}

func NewApp(title string) *App {
	logger.Init()
	logger.Log.Info("Fisheye3D initializing...")
	return &App{
		Width:             1024,
		Height:            768,
		Title:             title,
		Scene:             &renderer.Scene{Light: renderer.CreateLight()},
		rendererAPI:       &renderer.OpenGLRenderer{},
		EnableCameraInput: true,
	}
}

// SetFisheye enables the fisheye lens; the projector itself is created once
// the GL context exists.
func (app *App) SetFisheye(config renderer.FisheyeConfig) {
	app.fisheyeConfig = &config
}

// SetOnRenderCallback sets a callback invoked each frame after rendering.
func (app *App) SetOnRenderCallback(callback func(deltaTime float64)) {
	app.onRenderCallback = callback
}

// SetOnPickCallback sets a callback invoked when a click picks a model.
func (app *App) SetOnPickCallback(callback func(model *renderer.Model, point mgl.Vec3)) {
	app.onPickCallback = callback
}

// AddModel uploads a model and attaches it to the scene.
func (app *App) AddModel(model *renderer.Model) {
	app.rendererAPI.UploadModel(model)
	app.Scene.AddModel(model)
}

// AddGroup uploads a group's models and attaches them to the scene.
func (app *App) AddGroup(group *renderer.Group) {
	for _, model := range group.Models {
		app.rendererAPI.UploadModel(model)
	}
	app.Scene.AddGroup(group)
}

// Renderer exposes the backend for components that allocate GPU resources
// (cube captures, projectors).
func (app *App) Renderer() renderer.Render {
	return app.rendererAPI
}

func (app *App) GetWindow() *glfw.Window {
	return app.window
}

// Run opens the window at the given position and drives the render loop
// until the window closes.
func (app *App) Run(x, y int) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		logger.Log.Error("Could not initialize glfw", zap.Error(err))
		return
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 32)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var err error
	app.window, err = glfw.CreateWindow(int(app.Width), int(app.Height), app.Title, nil, nil)
	if err != nil {
		logger.Log.Error("Could not create glfw window", zap.Error(err))
		return
	}

	app.window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		logger.Log.Error("Could not initialize OpenGL", zap.Error(err))
		return
	}

	app.window.SetPos(x, y)
	SetDarkTitleBar(app.window)

	app.rendererAPI.Init(app.Width, app.Height, app.window)
	app.Camera = renderer.NewDefaultCamera(app.Height, app.Width)
	app.Camera.SetAspectRatio(float32(app.Width) / float32(app.Height))

	if app.fisheyeConfig != nil {
		app.Fisheye = renderer.NewFisheyeProjector(app.rendererAPI, *app.fisheyeConfig)
		app.Fisheye.Resize(float32(app.Width), float32(app.Height))
	}

	lastX, lastY = float64(app.Width/2), float64(app.Height/2)
	app.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	app.window.SetCursorPosCallback(app.mouseCallback)
	app.window.SetMouseButtonCallback(app.mouseButtonCallback)

	app.renderLoop()
}

func (app *App) renderLoop() {
	var lastTime = glfw.GetTime()
	var lastWidth, lastHeight = app.Width, app.Height

	for !app.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		actualWidth, actualHeight := app.window.GetSize()
		app.Width, app.Height = int32(actualWidth), int32(actualHeight)

		if app.Width != lastWidth || app.Height != lastHeight {
			app.rendererAPI.SetViewport(app.Width, app.Height)
			app.Camera.SetAspectRatio(float32(app.Width) / float32(app.Height))
			if app.Fisheye != nil {
				app.Fisheye.Resize(float32(app.Width), float32(app.Height))
			}
			lastWidth, lastHeight = app.Width, app.Height
		}

		if app.EnableCameraInput {
			app.Camera.ProcessKeyboard(app.window, float32(deltaTime))
		}

		if app.frameTrackId >= 2 {
			behaviour.GlobalBehaviourManager.UpdateAllFixed()
			app.frameTrackId = 0
		}
		behaviour.GlobalBehaviourManager.UpdateAll()

		if app.Fisheye != nil {
			app.Fisheye.Render(app.rendererAPI, app.Scene, app.Camera)
		} else {
			app.rendererAPI.Render(app.Scene, app.Camera)
		}

		if app.onRenderCallback != nil {
			app.onRenderCallback(deltaTime)
		}

		app.window.SwapBuffers()
		app.frameTrackId++
		glfw.PollEvents()
	}
	app.rendererAPI.Cleanup(app.Scene)
}

func (app *App) GetMousePosition() mgl.Vec2 {
	x, y := app.window.GetCursorPos()
	return mgl.Vec2{float32(x), float32(y)}
}

// Mouse move: orbit the camera while the right button is held.
func (app *App) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	if app.EnableCameraInput && w.GetAttrib(glfw.Focused) == glfw.True && w.GetMouseButton(glfw.MouseButtonRight) == glfw.Press {
		if firstMouse {
			lastX = xpos
			lastY = ypos
			firstMouse = false
			return
		}

		xoffset := xpos - lastX
		yoffset := lastY - ypos // Reversed since y-coordinates go from bottom to top
		lastX = xpos
		lastY = ypos

		app.Camera.ProcessMouseMovement(float32(xoffset), float32(yoffset), true)
	} else {
		firstMouse = true
	}
}

// Left button press/release pairs are debounced into clicks; a slow or long
// gesture is a drag and never picks.
func (app *App) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}

	switch action {
	case glfw.Press:
		app.pressTime = time.Now()
		app.pressX, app.pressY = w.GetCursorPos()
	case glfw.Release:
		x, y := w.GetCursorPos()
		dx, dy := x-app.pressX, y-app.pressY
		if time.Since(app.pressTime) > clickMaxDuration || dx*dx+dy*dy > clickMaxTravel*clickMaxTravel {
			return
		}
		app.pick(x, y)
	}
}

// pick builds the ray for a clicked pixel and reports the nearest model hit.
// With the fisheye active the standard camera ray is wrong for every pixel
// but the center, so the ray comes from the projector's inverse projection.
func (app *App) pick(x, y float64) {
	if app.onPickCallback == nil {
		return
	}

	var ray renderer.Ray
	if app.Fisheye != nil {
		pointer := mgl.Vec2{
			float32(2*x/float64(app.Width) - 1),
			float32(1 - 2*y/float64(app.Height)),
		}
		if !app.Fisheye.ComputeRaycastRayDirection(&ray, pointer) {
			return
		}
	} else {
		ray = renderer.ScreenToRay(*app.Camera, float32(x), float32(y), int(app.Width), int(app.Height))
	}

	var nearest *renderer.Model
	var nearestT float32
	var nearestPoint mgl.Vec3
	for _, model := range app.Scene.Models {
		if !model.IsRenderable() {
			continue
		}
		if hit, t, point := renderer.RayIntersectModel(ray, model); hit {
			if nearest == nil || t < nearestT {
				nearest, nearestT, nearestPoint = model, t, point
			}
		}
	}

	if nearest != nil {
		logger.Log.Debug("Model picked",
			zap.String("name", nearest.Name),
			zap.Float32("distance", nearestT))
		app.onPickCallback(nearest, nearestPoint)
	}
}
