package compress

import "fmt"

// Resolution is a target pixel width and height. The zero value means
// "use the operation's default resolution".
type Resolution struct {
	Width  int
	Height int
}

// Named resolution presets.
var (
	R240p  = Resolution{Width: 426, Height: 240}
	R360p  = Resolution{Width: 640, Height: 360}
	R480p  = Resolution{Width: 854, Height: 480}
	R720p  = Resolution{Width: 1280, Height: 720}
	R1080p = Resolution{Width: 1920, Height: 1080}

	// ImageDefault is the fallback resolution for image resizing.
	ImageDefault = Resolution{Width: 320, Height: 240}
	// VideoDefault is the fallback resolution for video compression.
	VideoDefault = R360p
)

// IsZero reports whether r carries no explicit dimensions.
func (r Resolution) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

// Valid reports whether both dimensions are positive.
func (r Resolution) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}
