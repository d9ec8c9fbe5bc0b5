// Package imageproc compresses uploaded images before they are stored.
package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const ContentType = "image/jpeg"

var ErrInvalidImage = errors.New("invalid image")

// Options controls the output of Avatar.
type Options struct {
	Size    int // width and height in pixels
	Quality int // JPEG quality 1-100
}

func (o Options) normalized() Options {
	if o.Size <= 0 {
		o.Size = 256
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = 85
	}
	return o
}

// Avatar decodes a jpeg, png or webp image, applies its EXIF orientation,
// center-crops it to a square of opts.Size and re-encodes it as JPEG.
func Avatar(r io.Reader, opts Options) ([]byte, error) {
	opts = opts.normalized()

	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	dst := imaging.Fill(src, opts.Size, opts.Size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	err = imaging.Encode(&buf, dst, imaging.JPEG, imaging.JPEGQuality(opts.Quality))
	if err != nil {
		return nil, fmt.Errorf("failed to encode avatar: %w", err)
	}

	return buf.Bytes(), nil
}
