package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"golang.org/x/image/tiff"

	"jpg2mask/internal/mask"
)

var (
	// ErrCodeOverflow means a class code does not fit in an 8-bit sample.
	ErrCodeOverflow = errors.New("imageio: class code exceeds 8-bit range")
	// ErrNotSingleChannel means a decoded mask is not 8-bit grayscale.
	ErrNotSingleChannel = errors.New("imageio: mask is not single-channel 8-bit")
)

// MaxCode is the largest class code a mask file can hold.
const MaxCode = 0xff

// Compression selects the lossless codec used for mask files.
type Compression string

const (
	CompressionDeflate Compression = "deflate"
	CompressionNone    Compression = "none"
)

// ParseCompression validates a compression name. Empty means deflate.
func ParseCompression(s string) (Compression, error) {
	switch Compression(s) {
	case "", CompressionDeflate:
		return CompressionDeflate, nil
	case CompressionNone:
		return CompressionNone, nil
	}
	return "", fmt.Errorf("imageio: unknown compression %q (want deflate or none)", s)
}

func (c Compression) tiffOptions() *tiff.Options {
	if c == CompressionNone {
		return &tiff.Options{Compression: tiff.Uncompressed}
	}
	return &tiff.Options{Compression: tiff.Deflate, Predictor: true}
}

// ToGray converts a raster into an 8-bit gray image, one sample per code.
func ToGray(r *mask.Raster) (*image.Gray, error) {
	if r.Max() > MaxCode {
		for i, v := range r.Pix {
			if v > MaxCode {
				return nil, fmt.Errorf("%w: code %d at (%d,%d)", ErrCodeOverflow, v, i%r.Width, i/r.Width)
			}
		}
	}

	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			img.Pix[y*img.Stride+x] = uint8(r.Pix[y*r.Width+x])
		}
	}
	return img, nil
}

// EncodeMask writes the raster as a single-channel 8-bit TIFF.
func EncodeMask(w io.Writer, r *mask.Raster, c Compression) error {
	img, err := ToGray(r)
	if err != nil {
		return err
	}
	if err := tiff.Encode(w, img, c.tiffOptions()); err != nil {
		return fmt.Errorf("imageio: tiff encode: %w", err)
	}
	return nil
}

// WriteMask encodes the raster to path. A partially written file is
// removed on failure.
func WriteMask(path string, r *mask.Raster, c Compression) error {
	// Validate before touching the filesystem.
	if _, err := ToGray(r); err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		return EncodeMask(w, r, c)
	})
}

// DecodeMask reads a single-channel 8-bit TIFF back into a raster.
func DecodeMask(rd io.Reader) (*mask.Raster, error) {
	img, err := tiff.Decode(rd)
	if err != nil {
		return nil, fmt.Errorf("imageio: tiff decode: %w", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotSingleChannel, img)
	}

	b := gray.Bounds()
	r := mask.NewRaster(b.Dx(), b.Dy())
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			r.Pix[y*r.Width+x] = uint16(gray.Pix[gray.PixOffset(b.Min.X+x, b.Min.Y+y)])
		}
	}
	return r, nil
}

// ReadMask decodes the mask file at path.
func ReadMask(path string) (*mask.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	r, err := DecodeMask(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	err = encode(bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("imageio: write %s: %w", path, err)
	}
	return nil
}
