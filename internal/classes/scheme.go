package classes

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
)

// ErrInvalidScheme is returned by New when the class list is inconsistent.
var ErrInvalidScheme = errors.New("classes: invalid scheme")

// BackgroundIndex is the class code of unclassified and background pixels.
const BackgroundIndex uint16 = 0

// RGBRange is an inclusive per-channel range. A pixel matches when all
// three channels fall inside their bounds.
type RGBRange struct {
	MinR, MaxR uint8
	MinG, MaxG uint8
	MinB, MaxB uint8
}

// Contains reports whether (r, g, b) lies inside the range.
func (rg RGBRange) Contains(r, g, b uint8) bool {
	return r >= rg.MinR && r <= rg.MaxR &&
		g >= rg.MinG && g <= rg.MaxG &&
		b >= rg.MinB && b <= rg.MaxB
}

// Class ties a class code to the paint colors that select it.
type Class struct {
	Index uint16
	Name  string
	Color color.NRGBA // display color used for previews
	Match RGBRange
	Rank  int // higher rank wins when predicates overlap
}

// Scheme is an ordered set of classes with exactly one background class.
type Scheme struct {
	byRank     []Class // ascending rank: the order classes are applied in
	background Class
	foreground []uint16
	maxIndex   uint16
}

// New validates the classes and builds a scheme. The class with index
// BackgroundIndex is the background; every other class takes part in the
// morphological cleanup in ascending index order.
func New(cls ...Class) (*Scheme, error) {
	if len(cls) == 0 {
		return nil, fmt.Errorf("%w: no classes", ErrInvalidScheme)
	}

	s := &Scheme{byRank: make([]Class, len(cls))}
	copy(s.byRank, cls)

	seenIndex := make(map[uint16]string, len(cls))
	seenRank := make(map[int]string, len(cls))
	hasBackground := false
	for _, c := range cls {
		if prev, dup := seenIndex[c.Index]; dup {
			return nil, fmt.Errorf("%w: index %d used by %q and %q", ErrInvalidScheme, c.Index, prev, c.Name)
		}
		if prev, dup := seenRank[c.Rank]; dup {
			return nil, fmt.Errorf("%w: rank %d used by %q and %q", ErrInvalidScheme, c.Rank, prev, c.Name)
		}
		seenIndex[c.Index] = c.Name
		seenRank[c.Rank] = c.Name

		if c.Index == BackgroundIndex {
			s.background = c
			hasBackground = true
		} else {
			s.foreground = append(s.foreground, c.Index)
		}
		if c.Index > s.maxIndex {
			s.maxIndex = c.Index
		}
	}
	if !hasBackground {
		return nil, fmt.Errorf("%w: missing background class (index %d)", ErrInvalidScheme, BackgroundIndex)
	}

	sort.Slice(s.byRank, func(i, j int) bool { return s.byRank[i].Rank < s.byRank[j].Rank })
	sort.Slice(s.foreground, func(i, j int) bool { return s.foreground[i] < s.foreground[j] })

	return s, nil
}

// Classify returns the class code for one RGB triple. Classes are applied
// in ascending rank with later matches overwriting earlier ones, so the
// highest-ranked matching class wins. Pixels matching nothing get
// BackgroundIndex.
func (s *Scheme) Classify(r, g, b uint8) uint16 {
	for i := len(s.byRank) - 1; i >= 0; i-- {
		if s.byRank[i].Match.Contains(r, g, b) {
			return s.byRank[i].Index
		}
	}
	return BackgroundIndex
}

// IsBackground reports whether (r, g, b) satisfies the background predicate
// itself. This differs from Classify returning BackgroundIndex, which also
// covers unmatched pixels.
func (s *Scheme) IsBackground(r, g, b uint8) bool {
	return s.background.Match.Contains(r, g, b)
}

// Foreground returns the non-background class codes in ascending order.
func (s *Scheme) Foreground() []uint16 {
	out := make([]uint16, len(s.foreground))
	copy(out, s.foreground)
	return out
}

// Classes returns the classes in application order (ascending rank).
func (s *Scheme) Classes() []Class {
	out := make([]Class, len(s.byRank))
	copy(out, s.byRank)
	return out
}

// MaxIndex returns the largest class code in the scheme.
func (s *Scheme) MaxIndex() uint16 {
	return s.maxIndex
}

// Palette maps class codes to their display colors.
func (s *Scheme) Palette() map[uint16]color.NRGBA {
	p := make(map[uint16]color.NRGBA, len(s.byRank))
	for _, c := range s.byRank {
		p[c.Index] = c.Color
	}
	return p
}

// Name returns the class name for a code, or "" if unknown.
func (s *Scheme) Name(index uint16) string {
	for _, c := range s.byRank {
		if c.Index == index {
			return c.Name
		}
	}
	return ""
}
