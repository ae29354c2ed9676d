package mask

import (
	"image"
	"image/color"
)

// Raster is a class-index map stored as a flat row-major slice.
// Codes are 16 bits wide; the 8-bit output encoder rejects codes above 255.
type Raster struct {
	Width  int
	Height int
	Pix    []uint16 // len = W*H, initialized to background (0)
}

// NewRaster allocates a zeroed raster.
func NewRaster(w, h int) *Raster {
	return &Raster{
		Width:  w,
		Height: h,
		Pix:    make([]uint16, w*h),
	}
}

// At returns the code at (x, y).
func (r *Raster) At(x, y int) uint16 {
	return r.Pix[y*r.Width+x]
}

// Set stores a code at (x, y).
func (r *Raster) Set(x, y int, v uint16) {
	r.Pix[y*r.Width+x] = v
}

// Equal reports whether two rasters have the same size and codes.
func (r *Raster) Equal(o *Raster) bool {
	if r.Width != o.Width || r.Height != o.Height {
		return false
	}
	for i, v := range r.Pix {
		if o.Pix[i] != v {
			return false
		}
	}
	return true
}

// Counts returns the number of pixels per class code.
func (r *Raster) Counts() map[uint16]int {
	counts := make(map[uint16]int)
	for _, v := range r.Pix {
		counts[v]++
	}
	return counts
}

// Max returns the largest code present, or 0 for an empty raster.
func (r *Raster) Max() uint16 {
	var m uint16
	for _, v := range r.Pix {
		if v > m {
			m = v
		}
	}
	return m
}

// Colorize paints each class in its palette color. Codes missing from the
// palette are painted opaque white.
func (r *Raster) Colorize(palette map[uint16]color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	unknown := color.NRGBA{255, 255, 255, 255}
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c, ok := palette[r.Pix[y*r.Width+x]]
			if !ok {
				c = unknown
			}
			i := img.PixOffset(x, y)
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
	return img
}

// Bitmap is a binary mask with the same layout as Raster.
type Bitmap struct {
	Width  int
	Height int
	Bits   []bool
}

// NewBitmap allocates an all-false bitmap.
func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{
		Width:  w,
		Height: h,
		Bits:   make([]bool, w*h),
	}
}

// Select returns a bitmap that is true where the raster equals code.
func (r *Raster) Select(code uint16) *Bitmap {
	m := NewBitmap(r.Width, r.Height)
	for i, v := range r.Pix {
		m.Bits[i] = v == code
	}
	return m
}

// Fill writes code into every raster cell where m is true.
func (r *Raster) Fill(m *Bitmap, code uint16) {
	for i, on := range m.Bits {
		if on {
			r.Pix[i] = code
		}
	}
}
