// Package rgb565 provides the RGB565 color type and an image format laid out in
// ST7789 wire order.
//
// Memory layout example for a 2-pixel row:
//
//	Pixels: 0       1
//	Colors: 0xF800  0x07E0   (red, green)
//	Bytes:  F8 00   07 E0
//
// This package provides:
//
// - Color: a 16-bit 5/6/5 color that implements color.Color
// - Model: a color.Model converting standard Go colors to Color
// - Image: a draw.Image whose rows can be streamed to the controller unchanged
//
// Example usage:
//
//	img := rgb565.NewImage(image.Rect(0, 0, 240, 320))
//	img.SetRGB565(10, 20, rgb565.Red)
//	draw.Draw(img, img.Bounds(), image.NewUniform(colornames.Navy), image.Point{}, draw.Src)
package rgb565
