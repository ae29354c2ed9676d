package mask

import (
	"image"

	"jpg2mask/internal/classes"
)

// Classify maps every pixel of an RGB-normalized image to a class code.
// It also returns the background bitmap: pixels that satisfied the
// background predicate itself, as opposed to pixels that matched nothing.
// The alpha channel is ignored.
func Classify(img *image.NRGBA, scheme *classes.Scheme) (*Raster, *Bitmap) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	r := NewRaster(w, h)
	bg := NewBitmap(w, h)

	for y := 0; y < h; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < w; x++ {
			red, green, blue := row[x*4], row[x*4+1], row[x*4+2]
			i := y*w + x
			r.Pix[i] = scheme.Classify(red, green, blue)
			bg.Bits[i] = scheme.IsBackground(red, green, blue)
		}
	}

	return r, bg
}

// Clean closes each foreground class with the cross element and writes the
// closed masks back in the given order, so later classes overwrite earlier
// ones. All masks are taken from the raster as it was before any write.
// Finally every pixel in background is reset to classes.BackgroundIndex,
// which undoes any growth onto true background.
func Clean(r *Raster, background *Bitmap, order []uint16) {
	closed := make([]*Bitmap, len(order))
	for i, code := range order {
		closed[i] = Close(r.Select(code))
	}
	for i, code := range order {
		r.Fill(closed[i], code)
	}
	if background != nil {
		r.Fill(background, classes.BackgroundIndex)
	}
}

// Convert runs Classify followed by Clean over the scheme's foreground
// classes in ascending index order.
func Convert(img *image.NRGBA, scheme *classes.Scheme) *Raster {
	r, bg := Classify(img, scheme)
	Clean(r, bg, scheme.Foreground())
	return r
}
