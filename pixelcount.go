//go:build !st7789debug

package st7789

const checkPixelCount = false
