package mask

// Cross structuring element offsets: center plus the 4-connected neighbors.
var (
	crossDX = [5]int{0, 0, 0, -1, 1}
	crossDY = [5]int{0, -1, 1, 0, 0}
)

// Dilate sets a pixel when it or any cross neighbor is set.
// Pixels outside the image count as unset.
func Dilate(m *Bitmap) *Bitmap {
	w, h := m.Width, m.Height
	out := NewBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for d := 0; d < 5; d++ {
				nx, ny := x+crossDX[d], y+crossDY[d]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				if m.Bits[ny*w+nx] {
					out.Bits[y*w+x] = true
					break
				}
			}
		}
	}
	return out
}

// Erode keeps a pixel only when it and every cross neighbor are set.
// Pixels outside the image count as unset, so edge pixels never survive.
func Erode(m *Bitmap) *Bitmap {
	w, h := m.Width, m.Height
	out := NewBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			keep := true
			for d := 0; d < 5; d++ {
				nx, ny := x+crossDX[d], y+crossDY[d]
				if nx < 0 || nx >= w || ny < 0 || ny >= h || !m.Bits[ny*w+nx] {
					keep = false
					break
				}
			}
			out.Bits[y*w+x] = keep
		}
	}
	return out
}

// Close is one dilation followed by one erosion.
func Close(m *Bitmap) *Bitmap {
	return Erode(Dilate(m))
}
