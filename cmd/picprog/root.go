package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/moffa90/go-picprog/hexfile"
	"github.com/moffa90/go-picprog/memory"
	"github.com/moffa90/go-picprog/picerr"
	"github.com/moffa90/go-picprog/programmer"
)

// options are the per-run flags that have no config file key.
type options struct {
	configPath string
	input      string
	output     string
	cc         string
	ihx8m      bool
	ihx16      bool
	ihx32      bool
	skipOnes   bool
	erase      bool
	burn       bool
	forceCal   bool
	quiet      bool
	verbose    bool
}

// flagSet is the part of a cobra flag set resolve needs.
type flagSet interface {
	Changed(name string) bool
}

func newRootCmd(log *logrus.Logger) *cobra.Command {
	var o options
	flags := defaultSettings()

	cmd := &cobra.Command{
		Use:   "picprog",
		Short: "Program PIC microcontrollers over ICSP",
		Long: `picprog programs, reads and erases PIC10/12/16/18 and dsPIC30
microcontrollers through a serial ICSP programmer adapter.

Give --input-hexfile and --burn to program the chip, --output-hexfile to
read it, or --erase --burn to bulk erase it. With both files the chip is
programmed first and then read back.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(cmd.Flags(), flags, o.configPath, os.Getenv)
			if err != nil {
				return err
			}
			if err := configureLogging(log, s.LogLevel, o.verbose, o.quiet); err != nil {
				return picerr.E(picerr.Usage, "log level", err)
			}
			format, err := o.format(s.Format)
			if err != nil {
				return err
			}
			if err := o.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), s, o, format, log)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "config file (default $HOME/.picprog.yaml)")
	f.StringVarP(&flags.Device, "device", "d", flags.Device, `device name, or "auto" to identify the chip`)
	f.StringVarP(&o.input, "input-hexfile", "i", "", "hex file to program")
	f.StringVarP(&o.output, "output-hexfile", "o", "", "hex file to write the chip contents to")
	f.StringVar(&o.cc, "cc-hexfile", "", "write the programmed image, calibration included, to this hex file")
	f.BoolVar(&o.ihx8m, "ihx8m", false, "use the ihx8m hex format")
	f.BoolVar(&o.ihx16, "ihx16", false, "use the ihx16 hex format")
	f.BoolVar(&o.ihx32, "ihx32", false, "use the ihx32 hex format")
	f.BoolVar(&o.skipOnes, "skip-ones", false, "leave erased locations out of output files")
	f.BoolVar(&o.erase, "erase", false, "bulk erase the chip before programming, removing code protection")
	f.BoolVar(&o.burn, "burn", false, "actually program the chip")
	f.BoolVar(&o.forceCal, "force-calibration", false, "program calibration words from the input file")
	f.BoolVar(&flags.Slow, "slow", false, "slow down the ICSP clock for long cables")
	f.BoolVarP(&o.quiet, "quiet", "q", false, "only log warnings and errors")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log protocol traffic")
	f.StringVarP(&flags.Port, "port", "p", flags.Port, "serial port of the programmer adapter")
	f.IntVar(&flags.Baud, "baud", flags.Baud, "serial line speed")
	f.StringVar(&flags.Driver, "driver", flags.Driver, "serial driver: bugst or tarm")
	f.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "adapter response timeout")
	f.IntVar(&flags.Retries, "retries", flags.Retries, "retries of a failed adapter exchange")
	f.BoolVar(&flags.StrictFraming, "strict-framing", false, "accept only all-ones framing bits on data memory reads")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return picerr.E(picerr.Usage, c.CommandPath(), err)
	})

	cmd.AddCommand(newDevicesCmd(), newPortsCmd(), newVersionCmd())
	return cmd
}

// resolve builds the settings: defaults, then the config file, then the
// environment, then every flag given on the command line. flags holds the
// values bound to the command line.
func resolve(fs flagSet, flags Settings, configPath string, getenv func(string) string) (Settings, error) {
	s := defaultSettings()
	path, required := configPath, configPath != ""
	if !required {
		path = defaultConfigPath()
	}
	if err := loadSettings(&s, path, required); err != nil {
		return s, err
	}
	applyEnv(&s, getenv)

	if fs.Changed("device") {
		s.Device = flags.Device
	}
	if fs.Changed("port") {
		s.Port = flags.Port
	}
	if fs.Changed("baud") {
		s.Baud = flags.Baud
	}
	if fs.Changed("driver") {
		s.Driver = flags.Driver
	}
	if fs.Changed("timeout") {
		s.Timeout = flags.Timeout
	}
	if fs.Changed("retries") {
		s.Retries = flags.Retries
	}
	if fs.Changed("slow") {
		s.Slow = flags.Slow
	}
	if fs.Changed("strict-framing") {
		s.StrictFraming = flags.StrictFraming
	}
	return s, s.validate()
}

// format returns the hex format from the format flags, or from the
// settings when none is given.
func (o *options) format(fallback string) (hexfile.Format, error) {
	var f hexfile.Format
	n := 0
	for _, c := range []struct {
		set    bool
		format hexfile.Format
	}{{o.ihx8m, hexfile.IHX8M}, {o.ihx16, hexfile.IHX16}, {o.ihx32, hexfile.IHX32}} {
		if c.set {
			f = c.format
			n++
		}
	}
	switch n {
	case 0:
		return hexfile.ParseFormat(fallback)
	case 1:
		return f, nil
	default:
		return hexfile.FormatAuto, picerr.Errorf(picerr.Usage, "give at most one of --ihx8m, --ihx16 and --ihx32")
	}
}

func (o *options) validate() error {
	if o.input == "" && o.output == "" && !o.erase {
		return picerr.Errorf(picerr.Usage, "Please specify either input or output hexfile or --erase")
	}
	if o.cc != "" && o.input == "" {
		return picerr.Errorf(picerr.Usage, "Carbon copy does not make sense without input file")
	}
	return nil
}

// run programs and then reads the chip as the options ask.
func run(ctx context.Context, s Settings, o options, format hexfile.Format, log *logrus.Logger) (err error) {
	sess, err := openSession(ctx, s, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			if err == nil {
				err = cerr
			} else {
				log.WithError(cerr).Warn("closing programmer")
			}
		}
	}()

	popts := []programmer.Option{programmer.WithLogger(newLogger(log, "programmer"))}
	if !o.quiet {
		popts = append(popts, programmer.WithProgressCallback(progressReporter(log)))
	}
	prog := programmer.New(sess.port, popts...)

	d, err := prog.SetDevice(ctx, s.Device)
	if err != nil {
		return err
	}
	log.WithField("device", d.Name).Info("using device")
	save := hexfile.SaveOptions{Format: format, SkipOnes: o.skipOnes}

	if o.input != "" || o.erase {
		img := memory.NewImage(d)
		if o.input != "" {
			sum, err := hexfile.Load(o.input, img)
			if err != nil {
				return err
			}
			if !sum.EOF {
				log.WithField("file", o.input).Warn("hex file has no end-of-file record")
			}
			log.WithFields(logrus.Fields{
				"file":    o.input,
				"format":  sum.Format,
				"records": sum.Records,
			}).Info("loaded hex file")
		}

		if o.burn {
			err := prog.Program(ctx, img, programmer.ProgramOptions{Erase: o.erase, NoPreserve: o.forceCal})
			if err != nil {
				return err
			}
		} else {
			log.Warn("No --burn option specified, device not programmed")
		}

		if o.cc != "" {
			if err := hexfile.Save(o.cc, img, save); err != nil {
				return err
			}
		}
	}

	if o.output != "" {
		img := memory.NewImage(d)
		if err := prog.Read(ctx, img); err != nil {
			return err
		}
		if err := hexfile.Save(o.output, img, save); err != nil {
			return err
		}
		log.WithField("file", o.output).Info("saved chip contents")
	}
	return nil
}
