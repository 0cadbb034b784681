package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/fragview/fragview/glfwhost"
	"github.com/fragview/fragview/options"
	"github.com/fragview/fragview/record"
	"github.com/fragview/fragview/surface"
	"github.com/fragview/fragview/uniform"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := &options.Options{
		ShaderFile: flag.String("shader", "", "Path to the GLSL fragment shader"),
		Textures:   flag.String("textures", "", "Comma-separated image paths, bound to tex0, tex1, ..."),
		Uniforms:   flag.String("uniforms", "", "Initial uniforms, e.g. \"time:f:0.0;color:v4:1,1,1,1\""),
		Width:      flag.Int("width", 1280, "Window or output width"),
		Height:     flag.Int("height", 720, "Window or output height"),
		Record:     flag.Bool("record", false, "Render offscreen and encode to a video file"),
		Duration:   flag.Float64("duration", 10.0, "Seconds to record"),
		FPS:        flag.Int("fps", 60, "Frames per second for recording"),
		OutputFile: flag.String("output", "output.mp4", "Output file for recording"),
		FFmpegPath: flag.String("ffmpeg", "", "Path to the ffmpeg executable"),
	}
	var help = flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *help || *opts.ShaderFile == "" {
		fmt.Println("Fragment shader viewer/recorder")
		flag.PrintDefaults()
		if *opts.ShaderFile == "" && !*help {
			os.Exit(2)
		}
		return
	}

	src, err := os.ReadFile(*opts.ShaderFile)
	if err != nil {
		log.Fatalf("Failed to read shader: %v", err)
	}

	initial, err := uniform.ParseSpec(*opts.Uniforms)
	if err != nil {
		log.Fatalf("Failed to parse uniforms: %v", err)
	}

	var texturePaths []string
	if *opts.Textures != "" {
		texturePaths = strings.Split(*opts.Textures, ",")
	}

	s := surface.New(surface.Config{
		FragmentSource:  string(src),
		TexturePaths:    texturePaths,
		InitialUniforms: initial,
	})

	if err := glfwhost.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfwhost.Terminate()

	host, err := glfwhost.New("fragview", *opts.Width, *opts.Height, s, !*opts.Record)
	if err != nil {
		log.Fatalf("Failed to create surface: %v", err)
	}
	defer host.Close()

	if *opts.Record {
		log.Printf("Recording %.1fs at %d fps to %s", *opts.Duration, *opts.FPS, *opts.OutputFile)
		ro := &record.Options{
			Width:      *opts.Width,
			Height:     *opts.Height,
			FPS:        *opts.FPS,
			Duration:   *opts.Duration,
			OutputFile: *opts.OutputFile,
			FFmpegPath: *opts.FFmpegPath,
		}
		err := record.Frames(host.Funcs(), func(frame int) error {
			// Drive the conventional animation uniform; shaders that
			// do not declare it are unaffected.
			if err := s.SetFloat("time", float32(frame)/float32(*opts.FPS)); err != nil {
				return err
			}
			return s.Render()
		}, ro)
		if err != nil {
			log.Fatalf("Recording failed: %v", err)
		}
		log.Printf("Wrote %s", *opts.OutputFile)
		return
	}

	animate := func(t float64) {
		if err := s.SetFloat("time", float32(t)); err != nil {
			log.Printf("set time: %v", err)
		}
	}
	host.Run(animate)
}
