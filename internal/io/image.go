package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// CoverArtOptions controls how embedded cover art is prepared before it is
// saved next to a cuesheet.
type CoverArtOptions struct {
	// Resize scales pictures larger than MaxSize down to fit MaxSize x MaxSize.
	Resize  bool
	MaxSize int

	// ConvertToJPEG re-encodes non-JPEG pictures as JPEG.
	ConvertToJPEG bool
}

// ImageService prepares cover art pictures read from audio tags.
//
// ImageService is used to:
//   - Shrink pictures to fit a maximum size
//   - Convert pictures to JPEG format
//
// Example usage:
//
//	svc := NewImageService()
//	data, err := svc.PrepareCoverArt(ctx, album.Artwork, CoverArtOptions{
//	    Resize: true, MaxSize: 1000, ConvertToJPEG: true,
//	})
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// PrepareCoverArt applies opts to a picture.
//
// The picture is returned unchanged when it needs neither scaling nor
// conversion. Otherwise the result is JPEG-encoded with quality 90.
func (s *ImageService) PrepareCoverArt(ctx context.Context, data []byte, opts CoverArtOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if opts.Resize && opts.MaxSize > 0 {
		width, height = fitSize(width, height, opts.MaxSize)
	}

	scaled := width != bounds.Dx() || height != bounds.Dy()
	convert := opts.ConvertToJPEG && format != "jpeg"
	if !scaled && !convert {
		return data, nil
	}

	if scaled {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		// Catmull-Rom for high-quality scaling
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// fitSize scales width x height down to fit a maxSize square, keeping the
// aspect ratio. Sizes already within bounds are returned unchanged.
//
// Example:
//
//	fitSize(1500, 1000, 1000) // 1000, 666
//	fitSize(800, 600, 1000)   // 800, 600
func fitSize(width, height, maxSize int) (int, int) {
	if width <= maxSize && height <= maxSize {
		return width, height
	}
	if width >= height {
		return maxSize, max(1, height*maxSize/width)
	}
	return max(1, width*maxSize/height), maxSize
}
