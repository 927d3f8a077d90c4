package device

import "fmt"

// Family selects the ICSP command set and memory layout of a part. The value
// is the program word width in bits.
type Family int

const (
	// Family12 covers baseline parts with 12-bit program words.
	Family12 Family = 12

	// Family14 covers mid-range parts with 14-bit program words.
	Family14 Family = 14

	// Family16 covers PIC18 parts (byte-addressed, 16-bit instructions).
	Family16 Family = 16

	// Family24 covers dsPIC30 parts with 24-bit instructions.
	Family24 Family = 24
)

func (f Family) String() string {
	switch f {
	case Family12:
		return "12-bit"
	case Family14:
		return "14-bit"
	case Family16:
		return "pic18"
	case Family24:
		return "dspic30"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// Wide reports whether the family stores program memory as bytes.
func (f Family) Wide() bool {
	return f >= Family16
}

// MemType is a non-volatile memory technology. It decides programming pulse
// timing and erase behaviour.
type MemType int

const (
	ROM MemType = iota
	PROM
	EPROM
	EPROM18
	EEPROM
	Flash
	Flash2
	Flash3
	Flash4
	Flash5
	Flash18
	Flash30
)

var memTypeNames = [...]string{
	ROM:     "rom",
	PROM:    "prom",
	EPROM:   "eprom",
	EPROM18: "eprom18",
	EEPROM:  "eeprom",
	Flash:   "flash",
	Flash2:  "flash2",
	Flash3:  "flash3",
	Flash4:  "flash4",
	Flash5:  "flash5",
	Flash18: "flash18",
	Flash30: "flash30",
}

func (m MemType) String() string {
	if m >= 0 && int(m) < len(memTypeNames) {
		return memTypeNames[m]
	}
	return fmt.Sprintf("memtype(%d)", int(m))
}

// NoID marks a part without a readable device ID.
const NoID = -1

// Limits shared by every descriptor.
const (
	// MaxConfSize is the largest configuration region, in words or bytes.
	MaxConfSize = 16

	// MaxIDSize is the largest ID region, in words or bytes.
	MaxIDSize = 8
)

// Descriptor describes one supported part.
type Descriptor struct {
	// Name is the lower-case part name, e.g. "pic16f628a"
	Name string

	// ProgSize is the program memory size: words for 12/14-bit parts,
	// hex-file bytes for the wider families
	ProgSize int

	// ProgPreserved is the number of trailing calibration words that must
	// survive an erase
	ProgPreserved int

	// ConfigMask holds the configuration bits that must survive an erase
	ConfigMask uint16

	// ConfSize is the number of configuration words (bytes for wide families)
	ConfSize int

	// Family selects the command set
	Family Family

	// PanelSize is the PIC18 multi-panel stride; 0 disables panel writes
	PanelSize int

	// WriteSize is the PIC18 write block length in bytes
	WriteSize int

	// ProgType is the program memory technology
	ProgType MemType

	// DataSize is the data EEPROM size in bytes
	DataSize int

	// DataType is the data memory technology
	DataType MemType

	// DeviceID is the value of the ID location, or NoID
	DeviceID int
}

// HasID reports whether the part can be identified by reading its ID.
func (d *Descriptor) HasID() bool {
	return d.DeviceID != NoID
}

// IDSize returns the number of ID locations of the part.
//
// Baseline parts carry a fifth location holding the backup oscillator
// calibration value.
func (d *Descriptor) IDSize() int {
	switch d.Family {
	case Family12:
		return 5
	case Family14:
		return 4
	case Family16:
		return MaxIDSize
	default:
		return 0
	}
}

// Panels returns the panel stride used for block writes. Parts without
// multi-panel writes use the whole program memory as one panel.
func (d *Descriptor) Panels() int {
	if d.PanelSize <= 0 || d.PanelSize >= d.ProgSize {
		return d.ProgSize
	}
	return d.PanelSize
}

// ConfigAddress returns the chip address of the first configuration word.
func (d *Descriptor) ConfigAddress() uint32 {
	switch d.Family {
	case Family12:
		return 0xfff
	case Family14:
		return 0x2007
	case Family16:
		return 0x300000
	default:
		return 0xf80000
	}
}

// ResetAddress returns the value of the chip address pointer after a
// programming-mode reset.
func (d *Descriptor) ResetAddress() uint32 {
	if d.Family == Family12 {
		return 0xfff
	}
	return 0
}

func (d *Descriptor) String() string {
	return d.Name
}
