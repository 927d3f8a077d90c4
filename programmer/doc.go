// Package programmer programs, reads and erases PIC microcontrollers over an
// ICSP session.
//
// # Overview
//
// A Programmer drives a Target, normally an *icsp.Port, through the
// complete programming sequence:
//   - Carrying calibration words and bits over from the chip
//   - Optionally bulk erasing the chip, which also clears code protection
//   - Burning program memory, data memory, ID words and fuses
//   - Reading every written location back
//
// Each family (12/14-bit, 18F and dsPIC30) has its own strategy, selected
// once the device is known. Locations already holding the wanted value are
// never written, so programming the same image twice writes nothing the
// second time.
//
// # Basic Usage
//
//	port := icsp.NewPort(protocol.NewFramer(ch))
//	if err := port.Open(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close(ctx)
//
//	prog := programmer.New(port)
//	d, err := prog.SetDevice(ctx, "auto")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	img := memory.NewImage(d)
//	if _, err := hexfile.Load("firmware.hex", img); err != nil {
//	    log.Fatal(err)
//	}
//	err = prog.Program(ctx, img, programmer.ProgramOptions{Erase: true})
//
// # Progress Tracking
//
//	prog := programmer.New(port,
//	    programmer.WithProgressCallback(func(p programmer.Progress) {
//	        fmt.Printf("[%s] %.1f%%\n", p.Phase, p.Percentage)
//	    }),
//	)
//
// # Cancellation
//
// Program and Read check ctx between locations and blocks. A cancelled
// session stops with a Cancelled error that wraps ctx.Err(); the chip is
// left partially programmed.
//
// # Error Handling
//
// Errors carry a picerr.Kind. A location that does not read back is a
// *VerificationError, or a *BlockVerifyError on 18F parts, except for
// configuration words: those only log a warning, since hardwired and code
// protection bits legitimately fail to verify.
//
//	err := prog.Program(ctx, img, opts)
//	var verr *programmer.VerificationError
//	if errors.As(err, &verr) {
//	    fmt.Printf("%s 0x%04X did not verify\n", verr.Region, verr.Addr)
//	}
package programmer
