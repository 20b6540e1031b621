package renderer

import (
	"context"
	"fmt"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glshapes/graphics"
	"github.com/richinsley/glshapes/options"
	"github.com/richinsley/glshapes/scene"
	"go.uber.org/zap"
)

var glInitOnce sync.Once

type Renderer struct {
	context           graphics.Context
	logger            *zap.Logger
	program           *shapeProgram
	scene             scene.Scene
	meshes            map[string]*gpuMesh
	offscreenRenderer *OffscreenRenderer
	width             int
	height            int
	recordMode        bool
	startTime         float64
}

func NewRenderer(opts *options.ShapesOptions, ctx graphics.Context, logger *zap.Logger) (*Renderer, error) {
	r := &Renderer{
		context:    ctx,
		logger:     logger,
		meshes:     make(map[string]*gpuMesh),
		width:      *opts.Width,
		height:     *opts.Height,
		recordMode: *opts.Record,
	}

	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	logger.Info("OpenGL initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	var err error
	r.program, err = buildShapeProgram(*opts.Translate)
	if err != nil {
		return nil, err
	}
	logger.Debug("shape program built", zap.Uint32("program", r.program.id), zap.Bool("translated", *opts.Translate))

	if r.recordMode {
		r.offscreenRenderer, err = NewOffscreenRenderer(r.width, r.height)
		if err != nil {
			r.program.destroy()
			return nil, fmt.Errorf("failed to create offscreen renderer: %w", err)
		}
	}

	return r, nil
}

// LoadScene uploads the scene's meshes, replacing any previous scene.
func (r *Renderer) LoadScene(s scene.Scene) error {
	r.unloadScene()

	for _, m := range s.Meshes() {
		if _, dup := r.meshes[m.Name]; dup {
			r.unloadScene()
			return fmt.Errorf("scene %s declares mesh %s twice", s.Name(), m.Name)
		}
		g, err := newGPUMesh(m)
		if err != nil {
			r.unloadScene()
			return fmt.Errorf("failed to upload scene %s: %w", s.Name(), err)
		}
		r.meshes[m.Name] = g
	}
	r.scene = s
	r.ResetClock()
	r.logger.Info("loaded scene", zap.String("scene", s.Name()), zap.Int("meshes", len(r.meshes)))
	return nil
}

func (r *Renderer) unloadScene() {
	for name, m := range r.meshes {
		m.destroy()
		delete(r.meshes, name)
	}
	r.scene = nil
}

// ResetClock restarts scene time at zero.
func (r *Renderer) ResetClock() {
	r.startTime = r.context.Time()
}

// RenderFrame draws the current scene at the given scene time into whatever
// framebuffer is bound.
func (r *Renderer) RenderFrame(time float64, width, height int) error {
	if r.scene == nil {
		return fmt.Errorf("no scene loaded")
	}
	frame, err := r.scene.Frame(float32(time))
	if err != nil {
		return fmt.Errorf("scene %s frame at %.3fs: %w", r.scene.Name(), time, err)
	}

	for _, u := range frame.Updates {
		m, ok := r.meshes[u.Mesh]
		if !ok {
			return fmt.Errorf("update for unknown mesh %s", u.Mesh)
		}
		if err := m.update(u.Vertices); err != nil {
			return err
		}
	}

	gl.Viewport(0, 0, int32(width), int32(height))
	bg := frame.Background
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(r.program.id)
	for _, call := range frame.Draws {
		m, ok := r.meshes[call.Mesh]
		if !ok {
			return fmt.Errorf("draw of unknown mesh %s", call.Mesh)
		}
		transform := call.Transform.ColumnMajor()
		gl.UniformMatrix4fv(r.program.transformLoc, 1, false, &transform[0])
		gl.Uniform4f(r.program.colorLoc, call.Color[0], call.Color[1], call.Color[2], call.Color[3])
		if err := m.draw(call); err != nil {
			return err
		}
	}
	gl.BindVertexArray(0)
	return nil
}

// Run drives the interactive window until it is closed or ctx is cancelled.
func (r *Renderer) Run(ctx context.Context) error {
	var frameCount int64
	for !r.context.ShouldClose() {
		select {
		case <-ctx.Done():
			r.logger.Info("render loop cancelled", zap.Int64("frames", frameCount))
			return nil
		default:
		}

		currentTime := r.context.Time() - r.startTime
		fbWidth, fbHeight := r.context.GetFramebufferSize()
		if err := r.RenderFrame(currentTime, fbWidth, fbHeight); err != nil {
			return err
		}

		r.context.EndFrame()
		frameCount++
	}
	r.logger.Info("window closed", zap.Int64("frames", frameCount))
	return nil
}

func (r *Renderer) Shutdown() {
	r.unloadScene()
	if r.program != nil {
		r.program.destroy()
	}
	if r.offscreenRenderer != nil {
		r.offscreenRenderer.Destroy()
	}
}
