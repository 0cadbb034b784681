package options

// Options carries the flag values for the viewer. Fields are pointers
// so they can be bound directly to flag declarations.
type Options struct {
	ShaderFile *string
	Textures   *string // comma-separated image paths, unit order
	Uniforms   *string // compact uniform spec string
	Width      *int
	Height     *int
	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFmpegPath *string
}
