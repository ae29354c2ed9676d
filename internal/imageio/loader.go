package imageio

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// decoder pairs a file signature with its decode function. The table is
// consulted directly instead of image.Decode: the tga package registers
// itself with an empty signature, which matches every input.
type decoder struct {
	format string
	magic  [][]byte
	decode func(io.Reader) (image.Image, error)
}

var decoders = []decoder{
	{"jpeg", [][]byte{{0xff, 0xd8}}, jpeg.Decode},
	{"png", [][]byte{[]byte("\x89PNG\r\n\x1a\n")}, png.Decode},
	{"gif", [][]byte{[]byte("GIF87a"), []byte("GIF89a")}, gif.Decode},
	{"bmp", [][]byte{[]byte("BM")}, bmp.Decode},
	{"tiff", [][]byte{[]byte("II*\x00"), []byte("MM\x00*")}, tiff.Decode},
}

// TGA has no signature, so it is only chosen by extension.
var tgaDecoder = decoder{format: "tga", decode: tga.Decode}

// sniff picks a decoder by signature, falling back to the extension for TGA.
func sniff(br *bufio.Reader, path string) (decoder, bool) {
	head, _ := br.Peek(8)
	for _, d := range decoders {
		for _, m := range d.magic {
			if bytes.HasPrefix(head, m) {
				return d, true
			}
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		return tgaDecoder, true
	}
	return decoder{}, false
}

// Load decodes a label image and normalizes it to RGB. The result is an
// NRGBA image with origin (0, 0) and alpha forced to 255.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	d, ok := sniff(br, path)
	if !ok {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, image.ErrFormat)
	}

	img, err := d.decode(br)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s (%s): %w", path, d.format, err)
	}

	rgb, err := ToRGB(img)
	if err != nil {
		return nil, fmt.Errorf("imageio: normalize %s (%s): %w", path, d.format, err)
	}
	return rgb, nil
}

// ToRGB converts any decoded image to an opaque NRGBA image. Alpha is
// dropped without compositing: the straight color channels are kept as-is,
// the way a plain RGB conversion would.
func ToRGB(src image.Image) (*image.NRGBA, error) {
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("empty image %v", b)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	switch s := src.(type) {
	case *image.NRGBA:
		for y := 0; y < b.Dy(); y++ {
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()*4], s.Pix[s.PixOffset(b.Min.X, b.Min.Y+y):])
		}
	default:
		// Conversion to NRGBA un-premultiplies translucent pixels.
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	}

	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 255
	}
	return dst, nil
}
