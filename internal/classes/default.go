package classes

import "image/color"

// Class codes of the built-in three-class scheme.
const (
	Background uint16 = 0
	ClassA     uint16 = 1 // painted red
	ClassB     uint16 = 2 // painted green
)

// Default returns the built-in scheme: black background, red class A and
// green class B. Precedence is Background > ClassA > ClassB.
func Default() *Scheme {
	s, err := New(
		Class{
			Index: Background,
			Name:  "background",
			Color: color.NRGBA{0, 0, 0, 255},
			Match: RGBRange{MinR: 0, MaxR: 0, MinG: 0, MaxG: 0, MinB: 0, MaxB: 0},
			Rank:  3,
		},
		Class{
			Index: ClassA,
			Name:  "class_a",
			Color: color.NRGBA{128, 0, 0, 255},
			Match: RGBRange{MinR: 125, MaxR: 130, MinG: 0, MaxG: 5, MinB: 0, MaxB: 5},
			Rank:  2,
		},
		Class{
			Index: ClassB,
			Name:  "class_b",
			Color: color.NRGBA{0, 128, 0, 255},
			Match: RGBRange{MinR: 0, MaxR: 50, MinG: 80, MaxG: 150, MinB: 0, MaxB: 50},
			Rank:  1,
		},
	)
	if err != nil {
		panic(err)
	}
	return s
}
