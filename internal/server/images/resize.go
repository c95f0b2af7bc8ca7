// Package images normalizes uploaded pictures into fixed-size PNG thumbnails.
package images

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/Shikhar-srivastav/task-manager/internal/common"
	"github.com/disintegration/imaging"
)

// ResizeSquarePNG decodes an uploaded image, crops and scales it to a
// size x size square, and re-encodes it as PNG. Data that does not decode
// as an image is reported as a validation error.
func ResizeSquarePNG(data []byte, size int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported image data", common.ErrValidation)
	}

	thumb := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
