package model

// HWPUnit is a length in 1/7200 inch
type HWPUnit int32

// Points converts to typographic points
func (u HWPUnit) Points() float64 {
	return float64(u) / 100
}

// Millimetres converts to millimetres
func (u HWPUnit) Millimetres() float64 {
	return float64(u) * 25.4 / 7200
}

// Point represents a position in HWPUNIT
type Point struct {
	X, Y int32
}

// Size is a width/height pair in HWPUNIT
type Size struct {
	Width, Height uint32
}

// Margins holds four edge offsets in HWPUNIT
type Margins struct {
	Left, Right, Top, Bottom int32
}

// Horizontal returns the sum of the left and right margins
func (m Margins) Horizontal() int32 {
	return m.Left + m.Right
}

// Vertical returns the sum of the top and bottom margins
func (m Margins) Vertical() int32 {
	return m.Top + m.Bottom
}

// Color is a 0x00BBGGRR colour reference
type Color uint32

// RGB splits the colour into its components
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16)
}
