// Package st7789 controls a ST7789 TFT LCD controller via SPI.
//
// The ST7789 drives color panels of up to 240×320 pixels from its own frame
// memory. The host keeps no framebuffer: every drawing operation becomes an
// address window (CASET/RASET) followed by a memory write (RAMWR) carrying
// RGB565 pixels, most significant byte first.
//
// # Display Characteristics
//
// - 16-bit RGB565 color, see package rgb565
// - Panels up to 240×320, optionally placed at an offset in frame memory
// - Four rotations, optionally mirrored
// - Hardware vertical scrolling with fixed top and bottom areas
// - Display inversion
//
// # Hardware Connection
//
// Connect the ST7789 display to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select (or GND if always selected)
//	RES         → Optional: GPIO for hardware reset
//	BLK         → 3.3V or a GPIO to switch the backlight
//
// # Basic Usage
//
//	package main
//
//	import (
//		"image"
//
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/st7789"
//		"periph.io/x/devices/v3/st7789/rgb565"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//		spiBus, _ := spireg.Open("")
//		dev, _ := st7789.NewSPI(spiBus, gpioreg.ByName("GPIO25"), &st7789.Opts{
//			W:           240,
//			H:           240,
//			Orientation: st7789.Landscape,
//			RST:         gpioreg.ByName("GPIO27"),
//		})
//		defer dev.Halt()
//
//		dev.Clear(rgb565.Black)
//		dev.DrawPrimitive(
//			st7789.Circle{Center: image.Pt(120, 120), Radius: 40},
//			st7789.FillStyle(rgb565.Red).WithStroke(rgb565.White, 3),
//		)
//	}
//
// NewSPI runs the power on sequence before returning. Until it succeeds, and
// after any bus failure, drawing calls fail with ErrNotReady; call Init to
// recover.
//
// # Drawing
//
// Dev offers three levels of access:
//
// - Draw implements display.Drawer and streams any image.Image, converting
// to RGB565 unless the source is a *rgb565.Image
//
// - DrawPrimitive rasterizes a Line, Circle or Triangle into solid spans,
// so no pixel buffer of the shape's size is ever built
//
// - SetAddressWindow and WritePixels give direct access to frame memory
//
// Dev also implements the TinyGo drivers.Displayer interface; see package
// tinygobus to run the driver on a microcontroller.
//
// # Hardware Scrolling
//
// The controller can scroll a band of rows without any pixel traffic:
//
//	dev.ConfigureScrollArea(0, 320, 0)
//	for {
//		dev.ScrollBy(1)
//		time.Sleep(20 * time.Millisecond)
//	}
//
// Rows are counted along the panel's native height regardless of the
// orientation, so in landscape the content moves horizontally.
//
// # Debugging
//
// Set the ST7789_DEBUG environment variable to log every command sent. Build
// with the st7789debug tag to make WritePixels panic when the number of pixels
// does not match the address window.
//
// # Datasheet
//
// https://www.rhydolabz.com/documents/33/ST7789.pdf
package st7789
