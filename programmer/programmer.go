package programmer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moffa90/go-picprog/device"
	"github.com/moffa90/go-picprog/memory"
	"github.com/moffa90/go-picprog/picerr"
)

// Programmer orchestrates programming, reading and erasing one PIC through
// an ICSP target. It selects a family strategy once the device is known.
//
// Programmer is not safe for concurrent use; one session talks to one chip.
type Programmer struct {
	target Target
	config Config

	dev    *device.Descriptor
	family strategy

	start   time.Time
	written int
}

// ProgramOptions selects how Program treats the chip.
type ProgramOptions struct {
	// Erase bulk erases the chip and clears code protection first
	Erase bool

	// NoPreserve programs calibration words and bits from the image instead
	// of keeping the chip's values
	NoPreserve bool
}

// stage is one unit of a session: a memory region burned or read.
type stage struct {
	phase Phase
	run   func(ctx context.Context, img *memory.Image) (int, error)
}

// strategy is the family-specific half of a session.
type strategy interface {
	// preserve carries calibration words and bits that must survive
	// programming from the chip into img.
	preserve(ctx context.Context, img *memory.Image, opts ProgramOptions) error

	// erase runs the bulk erase sequence that clears code protection.
	erase(ctx context.Context) error

	// rewind moves the chip pointer to the start of program memory.
	rewind(ctx context.Context) error

	programStages() []stage
	readStages() []stage
}

// New creates a new Programmer driving target. Select the device with
// SetDevice before programming.
//
// Example:
//
//	port := icsp.NewPort(protocol.NewFramer(ch))
//	if err := port.Open(ctx); err != nil {
//	    return err
//	}
//	defer port.Close(ctx)
//
//	prog := programmer.New(port, programmer.WithLogger(myLogger))
//	d, err := prog.SetDevice(ctx, "auto")
func New(target Target, opts ...Option) *Programmer {
	if target == nil {
		panic("target cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Programmer{
		target: target,
		config: cfg,
	}
}

// SetDevice selects the part by name. An empty name or "auto" identifies
// the chip instead.
func (p *Programmer) SetDevice(ctx context.Context, name string) (*device.Descriptor, error) {
	var d *device.Descriptor
	var err error
	if name == "" || strings.EqualFold(name, "auto") {
		d, err = p.Identify(ctx)
	} else {
		d, err = device.Lookup(name)
	}
	if err != nil {
		return nil, err
	}
	if err := p.use(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Device returns the selected part, or nil.
func (p *Programmer) Device() *device.Descriptor {
	return p.dev
}

func (p *Programmer) use(d *device.Descriptor) error {
	switch d.Family {
	case device.Family12, device.Family14:
		p.family = newMidrange(p, d)
	case device.Family16:
		p.family = newPIC18(p, d)
	case device.Family24:
		p.family = newDSPIC(p, d)
	default:
		return picerr.Errorf(picerr.Internal, "%s: unsupported family %s", d.Name, d.Family)
	}
	p.dev = d
	return nil
}

func (p *Programmer) check(img *memory.Image) error {
	if p.dev == nil {
		return picerr.Errorf(picerr.Usage, "no device selected")
	}
	if img == nil {
		return picerr.Errorf(picerr.Usage, "image cannot be nil")
	}
	if img.Device == nil || img.Device.Name != p.dev.Name {
		return picerr.Errorf(picerr.Usage, "image is not for %s", p.dev.Name)
	}
	return nil
}

// Program writes img to the chip: calibration words and bits are carried
// over from the chip, the chip is optionally erased, then program memory,
// data memory, ID words and fuses are burned in that order. Locations that
// are undefined in img or already hold the wanted value are not written;
// every write is read back.
//
// Program updates img with the preserved calibration values, so img holds
// what was written afterwards.
//
// Example:
//
//	img := memory.NewImage(prog.Device())
//	if _, err := hexfile.Load("firmware.hex", img); err != nil {
//	    return err
//	}
//	err := prog.Program(ctx, img, programmer.ProgramOptions{Erase: true})
func (p *Programmer) Program(ctx context.Context, img *memory.Image, opts ProgramOptions) error {
	if err := p.check(img); err != nil {
		return err
	}
	d := p.dev
	if (d.DataType == device.ROM || d.DataSize == 0) && (d.ProgType == device.ROM || d.ProgSize == 0) {
		return picerr.Errorf(picerr.Usage, "%s has no programmable memory", d.Name)
	}

	p.start = time.Now()
	p.written = 0
	p.logInfo("programming", "device", d.Name, "program", d.ProgSize, "data", d.DataSize)

	if err := p.cancelled(ctx); err != nil {
		return err
	}
	if !opts.NoPreserve {
		p.reportProgress(PhaseCalibration, 0, 1)
		if err := p.family.preserve(ctx, img, opts); err != nil {
			return fmt.Errorf("preserve calibration: %w", err)
		}
	}

	if opts.Erase {
		switch d.ProgType {
		case device.ROM, device.PROM, device.EPROM:
			return picerr.Errorf(picerr.Usage, "%s: %s memory cannot be erased", d.Name, d.ProgType)
		}
		if err := p.cancelled(ctx); err != nil {
			return err
		}
		p.reportProgress(PhaseErase, 0, 1)
		if err := p.family.erase(ctx); err != nil {
			return fmt.Errorf("erase: %w", err)
		}
		p.logInfo("erased and removed code protection")
	}

	if err := p.family.rewind(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := p.run(ctx, img, p.family.programStages()); err != nil {
		return err
	}

	p.reportProgress(PhaseComplete, 1, 1)
	p.logInfo("programming complete",
		"written", p.written,
		"elapsed", time.Since(p.start).String(),
	)
	return nil
}

// Read fills img from the chip: program memory, data memory, ID words and
// fuses. Values are read in batches; a batch that comes back short is a
// device fault.
func (p *Programmer) Read(ctx context.Context, img *memory.Image) error {
	if err := p.check(img); err != nil {
		return err
	}
	p.start = time.Now()
	p.written = 0
	p.logInfo("reading", "device", p.dev.Name, "program", p.dev.ProgSize, "data", p.dev.DataSize)

	if err := p.family.rewind(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := p.run(ctx, img, p.family.readStages()); err != nil {
		return err
	}

	p.reportProgress(PhaseComplete, 1, 1)
	p.logInfo("read complete", "elapsed", time.Since(p.start).String())
	return nil
}

// Erase bulk erases the chip, clearing code protection. Calibration words
// and bits are read first and written back.
func (p *Programmer) Erase(ctx context.Context) error {
	if p.dev == nil {
		return picerr.Errorf(picerr.Usage, "no device selected")
	}
	return p.Program(ctx, memory.NewImage(p.dev), ProgramOptions{Erase: true})
}

func (p *Programmer) run(ctx context.Context, img *memory.Image, stages []stage) error {
	for _, s := range stages {
		if err := p.cancelled(ctx); err != nil {
			return err
		}
		n, err := s.run(ctx, img)
		if err != nil {
			return fmt.Errorf("%s: %w", s.phase, err)
		}
		p.logInfo(string(s.phase), "locations", n)
	}
	return nil
}

// cancelled returns a Cancelled error once ctx is done.
func (p *Programmer) cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errCancelled(err)
	}
	return nil
}

// reportProgress calls the progress callback if configured.
func (p *Programmer) reportProgress(phase Phase, current, total int) {
	if p.config.ProgressCallback == nil {
		return
	}
	pct := 100.0
	if total > 0 {
		pct = float64(current) / float64(total) * 100
	}
	p.config.ProgressCallback(Progress{
		Phase:       phase,
		Current:     current,
		Total:       total,
		Percentage:  pct,
		Written:     p.written,
		ElapsedTime: time.Since(p.start),
	})
}

// logDebug logs a debug message if a logger is configured.
func (p *Programmer) logDebug(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (p *Programmer) logInfo(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Info(msg, keysAndValues...)
	}
}

// logWarn logs a warning if a logger is configured.
func (p *Programmer) logWarn(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Warn(msg, keysAndValues...)
	}
}

func hex4(v uint32) string { return fmt.Sprintf("0x%04X", v) }
