// Package bridge is the foreign-call boundary: surfaces are addressed
// through opaque integer handles and every operation reports
// success or failure as a return value, never a panic. Calls follow
// the same single-thread discipline as the rest of the engine; the
// host event loop is expected to serialize them.
package bridge

import (
	"errors"

	"github.com/fragview/fragview/surface"
	"github.com/fragview/fragview/uniform"
)

// Handle identifies one surface across the boundary. Zero is never a
// valid handle.
type Handle int32

// ErrInvalidHandle reports a handle that was never issued or has been
// disposed.
var ErrInvalidHandle = errors.New("invalid surface handle")

var (
	surfaces   = make(map[Handle]*surface.Surface)
	nextHandle Handle
)

// New constructs an unrealized surface from caller-supplied parts.
// initialUniforms may hold dynamically typed values; invalid entries
// are logged and skipped, the rest take effect.
func New(fragmentSource string, texturePaths []string, initialUniforms map[string]any) Handle {
	s := surface.New(surface.Config{
		FragmentSource:  fragmentSource,
		TexturePaths:    texturePaths,
		InitialUniforms: uniform.FromMap(initialUniforms),
	})
	nextHandle++
	surfaces[nextHandle] = s
	return nextHandle
}

// Lookup resolves a handle to its surface, for hosts that drive the
// lifecycle directly.
func Lookup(h Handle) (*surface.Surface, error) {
	s, ok := surfaces[h]
	if !ok {
		return nil, ErrInvalidHandle
	}
	return s, nil
}

// Dispose unrealizes the surface and retires its handle.
func Dispose(h Handle) error {
	s, ok := surfaces[h]
	if !ok {
		return ErrInvalidHandle
	}
	s.Unrealize()
	delete(surfaces, h)
	return nil
}

func with(h Handle, fn func(*surface.Surface) error) error {
	s, ok := surfaces[h]
	if !ok {
		return ErrInvalidHandle
	}
	return fn(s)
}

func SetUniformFloat(h Handle, name string, v float32) error {
	return with(h, func(s *surface.Surface) error { return s.SetFloat(name, v) })
}

func SetUniformVec2(h Handle, name string, x, y float32) error {
	return with(h, func(s *surface.Surface) error { return s.SetVec2(name, x, y) })
}

func SetUniformVec3(h Handle, name string, x, y, z float32) error {
	return with(h, func(s *surface.Surface) error { return s.SetVec3(name, x, y, z) })
}

func SetUniformVec4(h Handle, name string, x, y, z, w float32) error {
	return with(h, func(s *surface.Surface) error { return s.SetVec4(name, x, y, z, w) })
}

func SetUniformInt(h Handle, name string, v int32) error {
	return with(h, func(s *surface.Surface) error { return s.SetInt(name, v) })
}

func SetUniformIVec2(h Handle, name string, x, y int32) error {
	return with(h, func(s *surface.Surface) error { return s.SetIVec2(name, x, y) })
}

func SetUniformIVec3(h Handle, name string, x, y, z int32) error {
	return with(h, func(s *surface.Surface) error { return s.SetIVec3(name, x, y, z) })
}

func SetUniformIVec4(h Handle, name string, x, y, z, w int32) error {
	return with(h, func(s *surface.Surface) error { return s.SetIVec4(name, x, y, z, w) })
}
