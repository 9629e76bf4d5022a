//go:build st7789debug

package st7789

// checkPixelCount makes WritePixels panic when the number of colors does not
// match the address window.
const checkPixelCount = true
