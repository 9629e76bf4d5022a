package st7789

import (
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/st7789/rgb565"
	"tinygo.org/x/drivers"
)

var (
	_ display.Drawer    = (*Dev)(nil)
	_ drivers.Displayer = (*Dev)(nil)
)

// Size implements drivers.Displayer.
func (d *Dev) Size() (x, y int16) {
	return int16(d.rect.Dx()), int16(d.rect.Dy())
}

// SetPixel implements drivers.Displayer.
//
// The pixel is written to the panel immediately through a 1x1 address
// window. Pixels outside the display are ignored. Errors are reported by the
// next call to Display.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	p := image.Pt(int(x), int(y))
	if !p.In(d.rect) {
		return
	}
	err := d.ready()
	if err == nil {
		err = d.fault(d.fillRegion(Region{X0: p.X, Y0: p.Y, X1: p.X, Y1: p.Y}, rgb565.Model.Convert(c).(rgb565.Color)))
	}
	if err != nil && d.pixErr == nil {
		d.pixErr = err
	}
}

// Display implements drivers.Displayer.
//
// There is nothing to flush since SetPixel writes through; Display returns
// the first SetPixel error since the previous call.
func (d *Dev) Display() error {
	err := d.pixErr
	d.pixErr = nil
	return err
}
