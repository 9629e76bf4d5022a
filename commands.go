package st7789

import (
	"fmt"
	"time"
)

// Command opcodes, see ST7789VW datasheet section 9.1.
const (
	cmdSWRESET byte = 0x01 // Software reset
	cmdSLPIN   byte = 0x10 // Sleep in
	cmdSLPOUT  byte = 0x11 // Sleep out
	cmdNORON   byte = 0x13 // Normal display mode on
	cmdINVOFF  byte = 0x20 // Display inversion off
	cmdINVON   byte = 0x21 // Display inversion on
	cmdDISPOFF byte = 0x28 // Display off
	cmdDISPON  byte = 0x29 // Display on
	cmdCASET   byte = 0x2A // Column address set
	cmdRASET   byte = 0x2B // Row address set
	cmdRAMWR   byte = 0x2C // Memory write
	cmdVSCRDEF byte = 0x33 // Vertical scrolling definition
	cmdMADCTL  byte = 0x36 // Memory data access control
	cmdVSCSAD  byte = 0x37 // Vertical scroll start address of RAM
	cmdCOLMOD  byte = 0x3A // Interface pixel format
)

// MADCTL bits.
const (
	madctlMY  byte = 0x80 // Page address order (bottom to top)
	madctlMX  byte = 0x40 // Column address order (right to left)
	madctlMV  byte = 0x20 // Page/column exchange
	madctlBGR byte = 0x08 // BGR subpixel order
)

// colmodRGB565 selects 65K colors on both the RGB and the control interface.
const colmodRGB565 byte = 0x55

// Controller limits: frame memory is 240 columns by 320 rows.
const (
	maxColumns = 240
	maxRows    = 320
)

// Settle times. The controller ignores commands sent before they elapse.
const (
	resetPulse    = 10 * time.Millisecond
	resetSettle   = 120 * time.Millisecond
	swResetSettle = 150 * time.Millisecond
	sleepOutDelay = 120 * time.Millisecond
	displayOnWait = 10 * time.Millisecond
)

var commandNames = map[byte]string{
	cmdSWRESET: "SWRESET",
	cmdSLPIN:   "SLPIN",
	cmdSLPOUT:  "SLPOUT",
	cmdNORON:   "NORON",
	cmdINVOFF:  "INVOFF",
	cmdINVON:   "INVON",
	cmdDISPOFF: "DISPOFF",
	cmdDISPON:  "DISPON",
	cmdCASET:   "CASET",
	cmdRASET:   "RASET",
	cmdRAMWR:   "RAMWR",
	cmdVSCRDEF: "VSCRDEF",
	cmdMADCTL:  "MADCTL",
	cmdVSCSAD:  "VSCSAD",
	cmdCOLMOD:  "COLMOD",
}

func commandName(cmd byte) string {
	if n, ok := commandNames[cmd]; ok {
		return n
	}
	return fmt.Sprintf("%#02x", cmd)
}
