package compress

import "fmt"

// ImageError reports a failed image decode, resize, or encode. The
// underlying cause is preserved for diagnostics via Unwrap.
type ImageError struct {
	Err error
}

func (e *ImageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input is not a valid image: %v", e.Err)
	}
	return "input is not a valid image"
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// VideoError reports a failed video transcode. The underlying cause is
// preserved for diagnostics via Unwrap.
type VideoError struct {
	Err error
}

func (e *VideoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video encoding failed: %v", e.Err)
	}
	return "video encoding failed"
}

func (e *VideoError) Unwrap() error {
	return e.Err
}
