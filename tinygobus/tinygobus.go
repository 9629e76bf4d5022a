// Package tinygobus adapts TinyGo peripherals to the periph.io interfaces
// used by the st7789 driver, so the same driver runs on microcontrollers.
//
// On a TinyGo target:
//
//	machine.SPI0.Configure(machine.SPIConfig{Frequency: 40e6})
//	dc := machine.GPIO13
//	dc.Configure(machine.PinConfig{Mode: machine.PinOutput})
//	dev, err := st7789.New(tinygobus.NewConn(machine.SPI0, 0), tinygobus.NewPin("DC", int(dc), dc), nil)
package tinygobus

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
	"tinygo.org/x/drivers"
)

// Conn is a write oriented conn.Conn on top of a TinyGo SPI bus.
type Conn struct {
	bus   drivers.SPI
	limit int
}

// NewConn returns a Conn for bus. maxTxSize caps a single transfer, 0 means
// no limit.
func NewConn(bus drivers.SPI, maxTxSize int) *Conn {
	return &Conn{bus: bus, limit: maxTxSize}
}

func (c *Conn) String() string {
	return "tinygobus.Conn"
}

// Tx implements conn.Conn.
func (c *Conn) Tx(w, r []byte) error {
	if c.limit > 0 && (len(w) > c.limit || len(r) > c.limit) {
		return fmt.Errorf("tinygobus: transfer of %d bytes exceeds limit %d", max(len(w), len(r)), c.limit)
	}
	return c.bus.Tx(w, r)
}

// Duplex implements conn.Conn.
func (c *Conn) Duplex() conn.Duplex {
	return conn.Full
}

// MaxTxSize implements conn.Limits.
func (c *Conn) MaxTxSize() int {
	return c.limit
}

// Setter is the output side of a TinyGo machine.Pin.
type Setter interface {
	Set(high bool)
}

// Pin is a gpio.PinOut driving a TinyGo output pin.
type Pin struct {
	name string
	num  int
	p    Setter
}

// NewPin returns a Pin for an already configured TinyGo output pin.
func NewPin(name string, num int, p Setter) *Pin {
	return &Pin{name: name, num: num, p: p}
}

// String implements conn.Resource.
func (p *Pin) String() string {
	return fmt.Sprintf("%s(%d)", p.name, p.num)
}

// Halt implements conn.Resource. It has no effect.
func (p *Pin) Halt() error {
	return nil
}

// Name implements pin.Pin.
func (p *Pin) Name() string {
	return p.name
}

// Number implements pin.Pin.
func (p *Pin) Number() int {
	return p.num
}

// Function implements pin.Pin.
func (p *Pin) Function() string {
	return string(p.Func())
}

// Func implements pin.PinFunc.
func (p *Pin) Func() pin.Func {
	return gpio.OUT
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	p.p.Set(bool(l))
	return nil
}

// PWM implements gpio.PinOut. It is not supported.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("tinygobus: PWM is not supported")
}

var (
	_ conn.Conn   = &Conn{}
	_ conn.Limits = &Conn{}
	_ gpio.PinOut = &Pin{}
)
