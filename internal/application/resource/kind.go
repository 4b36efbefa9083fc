package resource

import (
	"errors"
	"fmt"
	"io"

	"github.com/younwookim/harness/internal/domain/graphics"
	"github.com/younwookim/harness/internal/domain/sound"
)

var (
	// ErrResourceNotFound is returned when no search path holds the named file.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrAssetDecode is returned when a file cannot be decoded as its kind.
	ErrAssetDecode = errors.New("asset decode failed")
	// ErrKindMismatch is returned by typed loaders for a name of another kind.
	ErrKindMismatch = errors.New("resource kind mismatch")
)

// Kind is how a resource is loaded, decided by its name.
type Kind int

const (
	KindRaw Kind = iota
	KindImage
	KindAudio
	KindFont
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindImage:
		return "image"
	case KindAudio:
		return "audio"
	case KindFont:
		return "font"
	default:
		return "unknown"
	}
}

// Classify returns the kind of name from its last four characters.
// The match is case-sensitive: "a.PNG" is raw.
func Classify(name string) Kind {
	if len(name) < 4 {
		return KindRaw
	}
	switch name[len(name)-4:] {
	case ".bmp", ".png", ".gif", ".jpg":
		return KindImage
	case ".wav", ".ogg":
		return KindAudio
	default:
		return KindRaw
	}
}

// Resource is the result of Load. Exactly one payload matches Kind.
type Resource struct {
	Kind    Kind
	Texture graphics.Texture
	Sample  *sound.Sample
	// Raw is an open stream on the file; the caller closes it.
	Raw io.ReadCloser
}

// LoadError describes a failed load.
type LoadError struct {
	Name string
	Path string
	Kind Kind
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load %s %q: %v", e.Kind, e.Name, e.Err)
	}
	return fmt.Sprintf("load %s %q from %s: %v", e.Kind, e.Name, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
