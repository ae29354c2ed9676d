package imageio

import (
	"fmt"
	"image/color"
	"io"

	"github.com/HugoSmits86/nativewebp"

	"jpg2mask/internal/mask"
)

// EncodePreview writes a lossless WebP with every class painted in its
// palette color.
func EncodePreview(w io.Writer, r *mask.Raster, palette map[uint16]color.NRGBA) error {
	if err := nativewebp.Encode(w, r.Colorize(palette), nil); err != nil {
		return fmt.Errorf("imageio: webp encode: %w", err)
	}
	return nil
}

// WritePreview encodes a preview to path.
func WritePreview(path string, r *mask.Raster, palette map[uint16]color.NRGBA) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodePreview(w, r, palette)
	})
}
