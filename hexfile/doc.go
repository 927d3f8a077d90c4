// Package hexfile reads and writes Intel HEX files for PIC memory images.
//
// # Formats
//
// Three sub-formats are understood:
//
//	ihx8m  - byte records with 16-bit addresses; 12/14-bit words are stored
//	         little-endian at twice their word address
//	ihx16  - one word per four hex digits, addressed by word
//	ihx32  - ihx8m plus ":02000004" extended linear address records
//
// The format of a file is detected from its first record: an extended
// address record selects ihx32, otherwise the declared length is compared
// with the line length.
//
// # Address Windows
//
// Every address belongs to one image region. Program memory is the fallback;
// the other regions sit at fixed windows that depend on the family:
//
//	12-bit   config 0xFFF, id words at program size (five words)
//	14-bit   id 0x2000-0x2003, config 0x2007, data 0x2100
//	pic18    id 0x200000, config 0x300000, data 0xF00000
//	dspic30  config 0xF80000, data just below 0x800000
//
// An address outside every window is rejected, which usually means the hex
// file was built for a different part.
//
// # Usage
//
//	img := memory.NewImage(d)
//	if _, err := hexfile.Load("in.hex", img); err != nil {
//	    log.Fatal(err)
//	}
//	err := hexfile.Save("out.hex", img, hexfile.SaveOptions{SkipOnes: true})
package hexfile
