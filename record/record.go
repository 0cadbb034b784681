// Package record captures rendered frames and pipes them to FFmpeg as
// raw RGBA video.
package record

import (
	"fmt"
	"io"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/fragview/fragview/glx"
)

// Options controls one capture run.
type Options struct {
	Width      int
	Height     int
	FPS        int
	Duration   float64
	OutputFile string
	FFmpegPath string
}

// Frames renders Duration*FPS frames via renderFrame, reads each one
// back from the framebuffer and feeds the stream to FFmpeg. renderFrame
// receives the frame index and must leave the frame in the read
// framebuffer.
func Frames(g glx.Funcs, renderFrame func(frame int) error, o *Options) error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid capture size %dx%d", o.Width, o.Height)
	}
	if o.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", o.FPS)
	}

	inputArgs := ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", o.Width, o.Height),
		"framerate": o.FPS,
	}
	outputArgs := ffmpeg.KwArgs{
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
	}

	pipeReader, pipeWriter := io.Pipe()
	cmd := ffmpeg.Input("pipe:", inputArgs).
		Output(o.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if o.FFmpegPath != "" {
		cmd = cmd.SetFfmpegPath(o.FFmpegPath)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- cmd.Run()
	}()

	rowBytes := o.Width * 4
	raw := make([]byte, rowBytes*o.Height)
	flipped := make([]byte, rowBytes*o.Height)
	total := int(o.Duration * float64(o.FPS))

	for frame := 0; frame < total; frame++ {
		if err := renderFrame(frame); err != nil {
			pipeWriter.CloseWithError(err)
			<-errc
			return err
		}
		g.ReadPixels(0, 0, int32(o.Width), int32(o.Height), raw)

		// GL reads rows bottom-up; video wants top-down.
		for y := 0; y < o.Height; y++ {
			src := raw[(o.Height-1-y)*rowBytes : (o.Height-y)*rowBytes]
			copy(flipped[y*rowBytes:], src)
		}
		if _, err := pipeWriter.Write(flipped); err != nil {
			<-errc
			return fmt.Errorf("failed to write frame %d to FFmpeg: %w", frame, err)
		}
	}

	pipeWriter.Close()
	return <-errc
}
