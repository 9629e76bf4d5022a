package st7789

import "fmt"

// ScrollState is the vertical scroll configuration of the controller.
//
// Rows are counted in the controller's native orientation: TopFixed rows
// never move, the next ScrollArea rows wrap around by Offset and the last
// BottomFixed rows never move.
type ScrollState struct {
	Offset      uint16
	TopFixed    uint16
	ScrollArea  uint16
	BottomFixed uint16
}

// ScrollState returns the current scroll configuration. It is the zero value
// until ConfigureScrollArea succeeds.
func (d *Dev) ScrollState() ScrollState {
	return d.scroll
}

// ConfigureScrollArea splits the native panel height into a fixed top area,
// a scrolling area and a fixed bottom area, and resets the offset to 0.
//
// The three values must add up to the native panel height. They are given in
// panel rows; Opts.YOffset and the frame memory rows below the panel are
// added to the fixed areas on the wire.
func (d *Dev) ConfigureScrollArea(topFixed, scrollArea, bottomFixed uint16) error {
	if err := d.ready(); err != nil {
		return err
	}
	h := d.native.Dy()
	if int(topFixed)+int(scrollArea)+int(bottomFixed) != h {
		return fmt.Errorf("%w: %d+%d+%d != %d", ErrInvalidScrollPartition, topFixed, scrollArea, bottomFixed, h)
	}
	// The controller partitions all 320 rows of frame memory; rows outside
	// the panel are folded into the fixed areas.
	tfa := uint16(d.yOff) + topFixed
	bfa := uint16(maxRows-h-d.yOff) + bottomFixed
	err := d.sendCommand(cmdVSCRDEF,
		byte(tfa>>8), byte(tfa),
		byte(scrollArea>>8), byte(scrollArea),
		byte(bfa>>8), byte(bfa))
	if err != nil {
		return d.fault(err)
	}
	d.scroll = ScrollState{TopFixed: topFixed, ScrollArea: scrollArea, BottomFixed: bottomFixed}
	return d.fault(d.sendStartAddress(0))
}

// sendStartAddress writes VSCSAD, the frame memory row shown at the top of
// the scroll area.
func (d *Dev) sendStartAddress(offset uint16) error {
	addr := uint16(d.yOff) + d.scroll.TopFixed + offset
	return d.sendCommand(cmdVSCSAD, byte(addr>>8), byte(addr))
}

// SetScrollOffset shows row offset of the scroll area at its top. It is a
// single register write; no pixel data is sent.
//
// offset must be lower than the scroll area height.
func (d *Dev) SetScrollOffset(offset uint16) error {
	if err := d.ready(); err != nil {
		return err
	}
	if offset >= d.scroll.ScrollArea {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOffsetOutOfRange, offset, d.scroll.ScrollArea)
	}
	if err := d.sendStartAddress(offset); err != nil {
		return d.fault(err)
	}
	d.scroll.Offset = offset
	return nil
}

// ScrollBy moves the scroll offset by delta rows, wrapping around the scroll
// area in both directions.
func (d *Dev) ScrollBy(delta int) error {
	if err := d.ready(); err != nil {
		return err
	}
	area := int(d.scroll.ScrollArea)
	if area == 0 {
		return fmt.Errorf("%w: scroll area not configured", ErrOffsetOutOfRange)
	}
	o := (int(d.scroll.Offset) + delta) % area
	if o < 0 {
		o += area
	}
	return d.SetScrollOffset(uint16(o))
}
