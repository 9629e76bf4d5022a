package st7789

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/st7789/rgb565"
)

var debug bool

func init() {
	debug = os.Getenv("ST7789_DEBUG") != ""
}

// bufSize is the size of the pixel staging buffer when the transport does
// not advertise a smaller limit.
const bufSize = 4096

// Opts is the configuration for the ST7789 display.
type Opts struct {
	// Native panel dimensions in pixels (portrait)
	W int // Width (default: 240, must be ≤240)
	H int // Height (default: 320, must be ≤320)

	// Position of the panel inside the 240x320 frame memory
	XOffset int
	YOffset int

	Orientation Orientation
	Inverted    bool // Send INVON, most IPS panels need it
	BGR         bool // Panel has BGR subpixel order

	// SPI clock used by NewSPI (default: 40MHz)
	Frequency physic.Frequency

	// Optional hardware reset pin
	RST gpio.PinOut // Reset pin (optional, nil if not used)

	// Delay provider for the settle times (default: real clock)
	Clock clockwork.Clock
}

func (o *Opts) normalize() (Opts, error) {
	var n Opts
	if o != nil {
		n = *o
	}
	if n.W == 0 && n.H == 0 {
		n.W, n.H = maxColumns, maxRows
	}
	if n.W <= 0 || n.W > maxColumns {
		return n, errors.New("st7789: width must be between 1 and 240")
	}
	if n.H <= 0 || n.H > maxRows {
		return n, errors.New("st7789: height must be between 1 and 320")
	}
	if n.XOffset < 0 || n.XOffset+n.W > maxColumns || n.YOffset < 0 || n.YOffset+n.H > maxRows {
		return n, errors.New("st7789: panel offset exceeds the frame memory")
	}
	if err := n.Orientation.validate(); err != nil {
		return n, err
	}
	if n.Frequency == 0 {
		n.Frequency = 40 * physic.MegaHertz
	}
	if n.Clock == nil {
		n.Clock = clockwork.NewRealClock()
	}
	return n, nil
}

// Dev is the device handle for the ST7789 display.
//
// Dev is not safe for concurrent use.
type Dev struct {
	// Communication
	c     conn.Conn       // Bus transport
	dc    gpio.PinOut     // Data/Command pin
	rst   gpio.PinOut     // Reset pin (optional)
	clock clockwork.Clock // Settle delays
	maxTx int             // Largest single transfer, 0 if unlimited

	// Display geometry
	native      image.Rectangle // Controller orientation
	rect        image.Rectangle // Logical bounds for the current orientation
	xOff, yOff  int
	orientation Orientation
	inverted    bool
	bgr         bool

	// State
	state  State
	scroll ScrollState
	window Region // Last address window

	cmd    [1]byte
	buf    []byte // Pixel staging buffer, even length
	pixErr error  // First SetPixel error since the last Display
}

// NewSPI creates a new ST7789 device connected via SPI and initializes it.
//
// The SPI port is configured for opts.Frequency (40MHz by default), Mode0
// (CPOL=0, CPHA=0), 8-bit transfers. The dc (Data/Command) GPIO pin must be
// provided.
//
// opts can be nil to use defaults (240x320 panel, portrait).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	o, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	c, err := p.Connect(o.Frequency, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("st7789: %w", err)
	}
	return New(c, dc, &o)
}

// New creates a new ST7789 device on an already configured transport and
// runs Init with opts.Orientation.
func New(c conn.Conn, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	o, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, errors.New("st7789: dc pin is required")
	}
	d := &Dev{
		c:        c,
		dc:       dc,
		rst:      o.RST,
		clock:    o.Clock,
		native:   image.Rect(0, 0, o.W, o.H),
		rect:     image.Rect(0, 0, o.W, o.H),
		xOff:     o.XOffset,
		yOff:     o.YOffset,
		bgr:      o.BGR,
		inverted: o.Inverted,
		state:    Uninitialized,
	}
	n := bufSize
	if l, ok := c.(conn.Limits); ok {
		if m := l.MaxTxSize(); m > 0 {
			d.maxTx = m
			n = min(n, m&^1)
		}
	}
	if n < 2 {
		n = 2
	}
	d.buf = make([]byte, n)

	if err := d.Init(o.Orientation); err != nil {
		return nil, err
	}
	return d, nil
}

// Init runs the power on sequence: reset, sleep out, configuration and
// display on. It can be called again to recover from Faulted or after Halt.
// The scroll partition is reset.
func (d *Dev) Init(o Orientation) error {
	if err := o.validate(); err != nil {
		return err
	}
	d.scroll = ScrollState{}
	d.window = Region{}

	d.state = Resetting
	if err := d.reset(); err != nil {
		return d.fault(err)
	}

	d.state = SleepOut
	if err := d.sendCommand(cmdSLPOUT); err != nil {
		return d.fault(err)
	}
	d.clock.Sleep(sleepOutDelay)

	if err := d.configure(o); err != nil {
		return d.fault(err)
	}
	d.state = Configured

	if err := d.sendCommand(cmdDISPON); err != nil {
		return d.fault(err)
	}
	d.clock.Sleep(displayOnWait)
	d.state = Ready
	return nil
}

// reset pulses the optional reset pin, then issues a software reset.
func (d *Dev) reset() error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return &BusError{Op: "reset", Err: fmt.Errorf("failed to pull RST low: %w", err)}
		}
		d.clock.Sleep(resetPulse)
		if err := d.rst.Out(gpio.High); err != nil {
			return &BusError{Op: "reset", Err: fmt.Errorf("failed to pull RST high: %w", err)}
		}
		d.clock.Sleep(resetSettle)
	}
	if err := d.sendCommand(cmdSWRESET); err != nil {
		return err
	}
	d.clock.Sleep(swResetSettle)
	return nil
}

func (d *Dev) configure(o Orientation) error {
	d.setOrientation(o)
	if err := d.sendCommand(cmdMADCTL, d.madctl()); err != nil {
		return err
	}
	if err := d.sendCommand(cmdCOLMOD, colmodRGB565); err != nil {
		return err
	}
	inv := cmdINVOFF
	if d.inverted {
		inv = cmdINVON
	}
	if err := d.sendCommand(inv); err != nil {
		return err
	}
	return d.sendCommand(cmdNORON)
}

func (d *Dev) setOrientation(o Orientation) {
	d.orientation = o
	w, h := d.native.Dx(), d.native.Dy()
	if o.swapsAxes() {
		w, h = h, w
	}
	d.rect = image.Rect(0, 0, w, h)
}

func (d *Dev) madctl() byte {
	v := d.orientation.madctl()
	if d.bgr {
		v |= madctlBGR
	}
	return v
}

// ready fails unless the device completed Init.
func (d *Dev) ready() error {
	if d.state != Ready {
		return fmt.Errorf("%w (%v)", ErrNotReady, d.state)
	}
	return nil
}

// fault marks the device Faulted when err comes from the bus.
func (d *Dev) fault(err error) error {
	var be *BusError
	if errors.As(err, &be) {
		d.state = Faulted
	}
	return err
}

// sendCommand sends a command byte with DC low followed by its parameters
// with DC high. DC is left high on return, ready for pixel data.
func (d *Dev) sendCommand(cmd byte, params ...byte) error {
	if debug {
		log.Printf("st7789: %s % X", commandName(cmd), params)
	}
	if err := d.dc.Out(gpio.Low); err != nil {
		return &BusError{Op: commandName(cmd), Err: err}
	}
	d.cmd[0] = cmd
	err := d.c.Tx(d.cmd[:], nil)
	if herr := d.dc.Out(gpio.High); err == nil {
		err = herr
	}
	if err != nil {
		return &BusError{Op: commandName(cmd), Err: err}
	}
	if len(params) == 0 {
		return nil
	}
	if err := d.c.Tx(params, nil); err != nil {
		return &BusError{Op: commandName(cmd), Err: err}
	}
	return nil
}

// sendPixels streams raw data with DC already high, split to fit the
// transport limit.
func (d *Dev) sendPixels(data []byte) error {
	for len(data) > 0 {
		n := len(data)
		if d.maxTx > 0 && n > d.maxTx {
			n = d.maxTx
		}
		if err := d.c.Tx(data[:n], nil); err != nil {
			return &BusError{Op: "pixel data", Err: err}
		}
		data = data[n:]
	}
	return nil
}

// setAddressWindow issues CASET and RASET for r, big-endian inclusive bounds.
func (d *Dev) setAddressWindow(r Region) error {
	colOff, rowOff := d.xOff, d.yOff
	if d.orientation.swapsAxes() {
		colOff, rowOff = rowOff, colOff
	}
	x0, x1 := r.X0+colOff, r.X1+colOff
	y0, y1 := r.Y0+rowOff, r.Y1+rowOff
	if err := d.sendCommand(cmdCASET, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	if err := d.sendCommand(cmdRASET, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)); err != nil {
		return err
	}
	d.window = r
	return nil
}

// writeSolid issues RAMWR and streams n pixels of color c.
func (d *Dev) writeSolid(c rgb565.Color, n int) error {
	if err := d.sendCommand(cmdRAMWR); err != nil {
		return err
	}
	hi, lo := c.Bytes()
	m := min(2*n, len(d.buf))
	for i := 0; i < m; i += 2 {
		d.buf[i], d.buf[i+1] = hi, lo
	}
	for rem := 2 * n; rem > 0; {
		k := min(rem, m)
		if err := d.sendPixels(d.buf[:k]); err != nil {
			return err
		}
		rem -= k
	}
	return nil
}

// fillRegion paints r with c. It implements target for the rasterizer.
func (d *Dev) fillRegion(r Region, c rgb565.Color) error {
	if err := d.setAddressWindow(r); err != nil {
		return err
	}
	return d.writeSolid(c, r.Area())
}

// State returns the controller state.
func (d *Dev) State() State {
	return d.state
}

// Orientation returns the current orientation.
func (d *Dev) Orientation() Orientation {
	return d.orientation
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds returns the logical bounds of the display for the current
// orientation.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// SetAddressWindow selects the region written by the next WritePixels.
func (d *Dev) SetAddressWindow(r Region) error {
	if err := d.ready(); err != nil {
		return err
	}
	if !r.In(d.rect) {
		return fmt.Errorf("%w: %v", ErrRegionOutOfBounds, r)
	}
	return d.fault(d.setAddressWindow(r))
}

// WritePixels issues a memory write and streams colors, most significant
// byte first, into the current address window.
//
// len(colors) must equal the area of the window; the controller places
// extra or missing pixels unpredictably. Builds with the st7789debug tag
// panic on a mismatch.
func (d *Dev) WritePixels(colors []rgb565.Color) error {
	if err := d.ready(); err != nil {
		return err
	}
	if checkPixelCount && len(colors) != d.window.Area() {
		panic(fmt.Sprintf("st7789: %d pixels written to window %v of %d pixels", len(colors), d.window, d.window.Area()))
	}
	if err := d.sendCommand(cmdRAMWR); err != nil {
		return d.fault(err)
	}
	for len(colors) > 0 {
		n := min(len(colors), len(d.buf)/2)
		for i, c := range colors[:n] {
			d.buf[2*i], d.buf[2*i+1] = c.Bytes()
		}
		if err := d.sendPixels(d.buf[:2*n]); err != nil {
			return d.fault(err)
		}
		colors = colors[n:]
	}
	return nil
}

// Clear paints the whole display with c using a single address window.
func (d *Dev) Clear(c rgb565.Color) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.fault(d.fillRegion(RegionOf(d.rect), c))
}

// DrawPrimitive rasterizes p with style s. Parts outside the display are
// clipped. Input validation errors are returned before anything is sent.
func (d *Dev) DrawPrimitive(p Primitive, s Style) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.fault(rasterize(d, p, s))
}

// Draw implements display.Drawer.
//
// The dst rectangle is clipped to the display and written through a single
// address window, one row at a time. Sources of type *rgb565.Image are sent
// without conversion.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if err := d.ready(); err != nil {
		return err
	}
	r := dst.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	sp = sp.Add(r.Min.Sub(dst.Min))
	if err := d.setAddressWindow(RegionOf(r)); err != nil {
		return d.fault(err)
	}
	if err := d.sendCommand(cmdRAMWR); err != nil {
		return d.fault(err)
	}
	img, fast := src.(*rgb565.Image)
	w := r.Dx()
	for y := sp.Y; y < sp.Y+r.Dy(); y++ {
		if fast && image.Rect(sp.X, y, sp.X+w, y+1).In(img.Rect) {
			if err := d.sendPixels(img.Row(y, sp.X, sp.X+w)); err != nil {
				return d.fault(err)
			}
			continue
		}
		if err := d.sendRow(src, sp.X, y, w); err != nil {
			return d.fault(err)
		}
	}
	return nil
}

// sendRow converts w pixels of src starting at (x, y) and streams them.
func (d *Dev) sendRow(src image.Image, x, y, w int) error {
	n := 0
	for i := 0; i < w; i++ {
		c := rgb565.Model.Convert(src.At(x+i, y)).(rgb565.Color)
		d.buf[n], d.buf[n+1] = c.Bytes()
		if n += 2; n == len(d.buf) {
			if err := d.sendPixels(d.buf[:n]); err != nil {
				return err
			}
			n = 0
		}
	}
	if n == 0 {
		return nil
	}
	return d.sendPixels(d.buf[:n])
}

// SetOrientation changes the memory access order. Bounds is updated and
// content already on the panel is not redrawn.
func (d *Dev) SetOrientation(o Orientation) error {
	if err := d.ready(); err != nil {
		return err
	}
	if err := o.validate(); err != nil {
		return err
	}
	d.setOrientation(o)
	return d.fault(d.sendCommand(cmdMADCTL, d.madctl()))
}

// Invert inverts the display colors.
func (d *Dev) Invert(invert bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	cmd := cmdINVOFF
	if invert {
		cmd = cmdINVON
	}
	if err := d.sendCommand(cmd); err != nil {
		return d.fault(err)
	}
	d.inverted = invert
	return nil
}

// Halt turns the display off and puts the controller to sleep.
// After calling Halt, the display will not respond to further commands
// until the device is re-initialized with Init.
//
// A Faulted device is not sent anything since its bus already failed; Halt
// only moves it to Uninitialized.
func (d *Dev) Halt() error {
	if d.state != Ready {
		d.state = Uninitialized
		return nil
	}
	if err := d.sendCommand(cmdDISPOFF); err != nil {
		return d.fault(err)
	}
	if err := d.sendCommand(cmdSLPIN); err != nil {
		return d.fault(err)
	}
	d.state = Uninitialized
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7789.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
