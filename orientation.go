package st7789

import "fmt"

// Rotation is the clockwise rotation of the logical image on the panel.
type Rotation uint8

// Supported rotations.
const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "0°"
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	}
	return fmt.Sprintf("Rotation(%d)", uint8(r))
}

// Orientation selects how logical coordinates map to the panel.
type Orientation struct {
	Rotation Rotation
	Mirrored bool // Mirror along the logical x axis
}

// Portrait is the native panel orientation.
var Portrait = Orientation{}

// Landscape rotates the panel by 90°.
var Landscape = Orientation{Rotation: Rotate90}

func (o Orientation) String() string {
	if o.Mirrored {
		return o.Rotation.String() + " mirrored"
	}
	return o.Rotation.String()
}

func (o Orientation) validate() error {
	if o.Rotation > Rotate270 {
		return fmt.Errorf("%w: %v", ErrInvalidOrientation, o.Rotation)
	}
	return nil
}

// swapsAxes reports whether logical x runs along panel rows.
func (o Orientation) swapsAxes() bool {
	return o.Rotation == Rotate90 || o.Rotation == Rotate270
}

// madctl returns the MADCTL parameter for the orientation.
func (o Orientation) madctl() byte {
	var v byte
	switch o.Rotation {
	case Rotate90:
		v = madctlMX | madctlMV
	case Rotate180:
		v = madctlMX | madctlMY
	case Rotate270:
		v = madctlMY | madctlMV
	}
	if o.Mirrored {
		// Logical x is the panel row axis when MV is set.
		if o.swapsAxes() {
			v ^= madctlMY
		} else {
			v ^= madctlMX
		}
	}
	return v
}
