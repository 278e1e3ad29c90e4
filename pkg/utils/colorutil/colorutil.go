// Package colorutil adjusts icon colors so they stay legible against the
// resolved card background in both light and dark themes.
package colorutil

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Luminance returns the WCAG relative luminance of a color
func Luminance(c colorful.Color) float64 {
	lin := func(v float64) float64 {
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// ContrastRatio returns the WCAG contrast ratio between two colors,
// always >= 1.
func ContrastRatio(a, b colorful.Color) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// Readable blends a color toward black or white until it reaches the
// minimum contrast ratio against the background. Unparsable inputs come
// back unchanged so a bad palette entry degrades to the original color.
func Readable(hex, backgroundHex string, minRatio float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	bg, err := colorful.Hex(backgroundHex)
	if err != nil {
		return hex
	}

	if ContrastRatio(c, bg) >= minRatio {
		return c.Hex()
	}

	// Push away from the background: dark backgrounds get a lighter color,
	// light backgrounds a darker one.
	target := colorful.Color{R: 1, G: 1, B: 1}
	if Luminance(bg) > 0.5 {
		target = colorful.Color{}
	}

	const steps = 20
	for i := 1; i <= steps; i++ {
		blended := c.BlendRgb(target, float64(i)/steps)
		if ContrastRatio(blended, bg) >= minRatio {
			return blended.Hex()
		}
	}
	return target.Hex()
}
