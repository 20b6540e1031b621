package renderer

import (
	"context"
	"fmt"
	"io"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	options "github.com/richinsley/glshapes/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// Frame is a single rendered frame's RGBA pixels, bottom row first.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// OffscreenRenderer is an RGBA8 framebuffer that recorded frames render into.
type OffscreenRenderer struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
}

const numBuffers = 3

func NewOffscreenRenderer(width, height int) (*OffscreenRenderer, error) {
	or := &OffscreenRenderer{
		width:  width,
		height: height,
	}

	gl.GenFramebuffers(1, &or.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
	gl.GenTextures(1, &or.textureID)
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, or.textureID, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		or.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete (status 0x%x)", status)
	}
	return or, nil
}

func (or *OffscreenRenderer) Destroy() {
	gl.DeleteFramebuffers(1, &or.fbo)
	gl.DeleteTextures(1, &or.textureID)
}

func (or *OffscreenRenderer) readPixels() []byte {
	pixels := make([]byte, or.width*or.height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, or.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return pixels
}

// encoderArgs builds the ffmpeg input and output arguments for raw RGBA frames.
// GL reads rows bottom-up, so the output is flipped vertically.
func encoderArgs(opts *options.ShapesOptions) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", *opts.Width, *opts.Height),
		"framerate": *opts.FPS,
	}
	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
	}
	return
}

// frameCount is the number of frames needed to cover duration seconds at fps.
func frameCount(duration float64, fps int) int {
	if duration <= 0 || fps <= 0 {
		return 0
	}
	return int(duration * float64(fps))
}

// runEncoder is the consumer. It pipes frames from frameChan into ffmpeg.
func (r *Renderer) runEncoder(opts *options.ShapesOptions, frameChan <-chan *Frame, doneChan chan<- error) {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := encoderArgs(opts)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if *opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	// If ffmpeg never starts or exits early nothing reads the pipe again, so
	// closing the reader is what unblocks pending writes.
	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		if err != nil {
			pipeReader.CloseWithError(fmt.Errorf("ffmpeg exited: %w", err))
		} else {
			pipeReader.Close()
		}
		errc <- err
	}()

	var writeErr error
	for frame := range frameChan {
		if writeErr != nil {
			// Keep draining so the producer never blocks.
			continue
		}
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, err)
			r.logger.Error("encoder write failed", zap.Error(writeErr))
		}
	}
	pipeWriter.Close()

	runErr := <-errc
	if runErr != nil {
		doneChan <- fmt.Errorf("ffmpeg failed: %w", runErr)
		return
	}
	if writeErr != nil {
		doneChan <- writeErr
		return
	}
	doneChan <- nil
}

// RunOffscreen renders Duration seconds of the scene at a fixed timestep and
// encodes the frames to OutputFile.
func (r *Renderer) RunOffscreen(ctx context.Context, opts *options.ShapesOptions) error {
	if r.offscreenRenderer == nil {
		return fmt.Errorf("renderer was not created in record mode")
	}

	total := frameCount(*opts.Duration, *opts.FPS)
	timeStep := 1.0 / float64(*opts.FPS)
	r.logger.Info("starting record mode",
		zap.Int("frames", total),
		zap.Int("fps", *opts.FPS),
		zap.String("output", *opts.OutputFile))

	frameChan := make(chan *Frame, numBuffers)
	encoderDoneChan := make(chan error, 1)
	go r.runEncoder(opts, frameChan, encoderDoneChan)

	var renderErr error
	for i := 0; i < total; i++ {
		if ctx.Err() != nil {
			r.logger.Warn("recording cancelled", zap.Int("frame", i))
			break
		}

		currentTime := float64(i) * timeStep
		gl.BindFramebuffer(gl.FRAMEBUFFER, r.offscreenRenderer.fbo)
		renderErr = r.RenderFrame(currentTime, r.offscreenRenderer.width, r.offscreenRenderer.height)
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		if renderErr != nil {
			r.logger.Error("failed to render frame", zap.Int("frame", i), zap.Error(renderErr))
			break
		}

		select {
		case frameChan <- &Frame{Pixels: r.offscreenRenderer.readPixels(), PTS: int64(i)}:
		case <-ctx.Done():
			r.logger.Warn("recording cancelled", zap.Int("frame", i))
		}
		if (i+1)%(*opts.FPS) == 0 {
			r.logger.Debug("recorded", zap.Int("frames", i+1), zap.Int("total", total))
		}
	}

	close(frameChan)
	encErr := <-encoderDoneChan
	if renderErr != nil {
		return renderErr
	}
	return encErr
}
