package hexfile

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/moffa90/go-picprog/device"
	"github.com/moffa90/go-picprog/memory"
	"github.com/moffa90/go-picprog/picerr"
)

func newImage(t *testing.T, name string) *memory.Image {
	t.Helper()
	d, err := device.Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q) error = %v", name, err)
	}
	return memory.NewImage(d)
}

func TestDecoder_ExtendedAddress(t *testing.T) {
	input := ":020000040010EA\n" +
		":02000000AABB99\n" +
		":02000200CCDD53\n" +
		":00000001FF\n"

	dec := NewDecoder(strings.NewReader(input))
	var addrs []uint32
	for {
		rec, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		addrs = append(addrs, rec.Address)
	}

	want := []uint32{0x00100000, 0x00100002}
	if len(addrs) != len(want) {
		t.Fatalf("got %d records, want %d", len(addrs), len(want))
	}
	for i := range want {
		if addrs[i] != want[i] {
			t.Errorf("record %d address = 0x%08X, want 0x%08X", i, addrs[i], want[i])
		}
	}
	if dec.Format() != IHX32 {
		t.Errorf("Format() = %v, want ihx32", dec.Format())
	}
	if !dec.SawEOF() {
		t.Error("SawEOF() = false")
	}
}

func TestDecoder_StopsAtEOFRecord(t *testing.T) {
	input := ":00000001FF\n" +
		"garbage that is never parsed\n"

	dec := NewDecoder(strings.NewReader(input))
	if _, err := dec.Next(); err != io.EOF {
		t.Fatalf("Next() error = %v, want io.EOF", err)
	}
	if _, err := dec.Next(); err != io.EOF {
		t.Fatalf("second Next() error = %v, want io.EOF", err)
	}
}

func TestLoadReader(t *testing.T) {
	tests := []struct {
		name    string
		device  string
		input   string
		format  Format
		check   func(t *testing.T, img *memory.Image)
		wantErr picerr.Kind
		errMsg  string
	}{
		{
			name:   "ihx16 program and config",
			device: "pic16f628a",
			input: ":020000002805303F62\n" +
				":012007003F3069\n" +
				":00000001FF\n",
			format: IHX16,
			check: func(t *testing.T, img *memory.Image) {
				if v, _ := img.Program.Get(1); v != 0x303f {
					t.Errorf("pgm[1] = 0x%04X, want 0x303F", v)
				}
				if v, ok := img.Config.Get(0); !ok || v != 0x3f30 {
					t.Errorf("conf[0] = 0x%04X, %v", v, ok)
				}
			},
		},
		{
			name:   "ihx8m words are little-endian",
			device: "pic16f628a",
			input: ":0400000005283F3060\n" +
				":00000001FF\n",
			format: IHX8M,
			check: func(t *testing.T, img *memory.Image) {
				if v, _ := img.Program.Get(0); v != 0x2805 {
					t.Errorf("pgm[0] = 0x%04X, want 0x2805", v)
				}
				if v, _ := img.Program.Get(1); v != 0x303f {
					t.Errorf("pgm[1] = 0x%04X, want 0x303F", v)
				}
			},
		},
		{
			name:   "ihx8m config and data windows",
			device: "pic16f628a",
			input: ":02400E00303F41\n" +
				":02420000AB0011\n" +
				":00000001FF\n",
			format: IHX8M,
			check: func(t *testing.T, img *memory.Image) {
				if v, ok := img.Config.Get(0); !ok || v != 0x3f30 {
					t.Errorf("conf[0] = 0x%04X, %v", v, ok)
				}
				if v, ok := img.Data.Get(0); !ok || v != 0xab {
					t.Errorf("data[0] = 0x%02X, %v", v, ok)
				}
			},
		},
		{
			name:    "odd ihx8m address",
			device:  "pic16f628a",
			input:   ":020001000528D0\n",
			wantErr: picerr.DataFormat,
			errMsg:  "odd address",
		},
		{
			name:    "address outside every region",
			device:  "pic16f84a",
			input:   ":020800000528C9\n",
			wantErr: picerr.AddressRange,
			errMsg:  "invalid address",
		},
		{
			name:    "not a hex record",
			device:  "pic16f628a",
			input:   "hello world\n",
			wantErr: picerr.DataFormat,
			errMsg:  "invalid input line",
		},
		{
			name:    "unsupported record type",
			device:  "pic16f628a",
			input:   ":0400000500000000F7\n",
			wantErr: picerr.DataFormat,
			errMsg:  "invalid input line",
		},
		{
			name:    "length matches no format",
			device:  "pic16f628a",
			input:   ":030000000528CD\n",
			wantErr: picerr.DataFormat,
			errMsg:  "unknown input format",
		},
		{
			name:   "pic18 ihx32 windows",
			device: "pic18f452",
			input: ":020000040000FA\n" +
				":0400000012345678E8\n" +
				":020000040030CA\n" +
				":0100010022DC\n" +
				":0200000400F00A\n" +
				":01000000A55A\n" +
				":020000040020DA\n" +
				":0100070001F7\n" +
				":00000001FF\n",
			format: IHX32,
			check: func(t *testing.T, img *memory.Image) {
				if v, _ := img.Program.Get(3); v != 0x78 {
					t.Errorf("pgm[3] = 0x%02X, want 0x78", v)
				}
				if v, ok := img.Config.Get(1); !ok || v != 0x22 {
					t.Errorf("conf[1] = 0x%02X, %v", v, ok)
				}
				if v, ok := img.Data.Get(0); !ok || v != 0xa5 {
					t.Errorf("data[0] = 0x%02X, %v", v, ok)
				}
				if v, ok := img.ID.Get(7); !ok || v != 0x01 {
					t.Errorf("id[7] = 0x%02X, %v", v, ok)
				}
			},
		},
		{
			name:   "pic18 ihx16 swaps bytes",
			device: "pic18f452",
			input: ":010000001234B9\n" +
				":00000001FF\n",
			format: IHX16,
			check: func(t *testing.T, img *memory.Image) {
				if v, _ := img.Program.Get(0); v != 0x34 {
					t.Errorf("pgm[0] = 0x%02X, want 0x34", v)
				}
				if v, _ := img.Program.Get(1); v != 0x12 {
					t.Errorf("pgm[1] = 0x%02X, want 0x12", v)
				}
			},
		},
		{
			name:   "missing eof record is accepted",
			device: "pic16f84a",
			input:  ":020000000528D1\n",
			format: IHX8M,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := newImage(t, tt.device)
			sum, err := LoadReader(strings.NewReader(tt.input), img)

			if tt.errMsg != "" {
				if err == nil {
					t.Fatal("LoadReader() expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error = %q, want substring %q", err.Error(), tt.errMsg)
				}
				if got := picerr.KindOf(err); got != tt.wantErr {
					t.Errorf("error kind = %v, want %v", got, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadReader() error = %v", err)
			}
			if sum.Format != tt.format {
				t.Errorf("Format = %v, want %v", sum.Format, tt.format)
			}
			if tt.check != nil {
				tt.check(t, img)
			}
		})
	}
}

func TestLoadReader_ChecksumRejection(t *testing.T) {
	good := ":0400000005283F3060"
	// Flip one nibble of the checksum.
	bad := good[:len(good)-1] + "7"

	img := newImage(t, "pic16f628a")
	before := img.Clone()

	_, err := LoadReader(strings.NewReader(bad+"\n"), img)
	if err == nil {
		t.Fatal("corrupted checksum accepted")
	}
	if picerr.KindOf(err) != picerr.DataFormat {
		t.Errorf("error kind = %v, want data format", picerr.KindOf(err))
	}
	if !strings.Contains(err.Error(), "checksum mismatch") {
		t.Errorf("error = %q", err)
	}
	if !img.Equal(before) {
		t.Error("rejected line mutated the image")
	}
}

func TestLoadReader_EarlierLinesKept(t *testing.T) {
	input := ":020000000528D1\n" +
		":02000200FF3FBF\n"

	img := newImage(t, "pic16f84a")
	_, err := LoadReader(strings.NewReader(input), img)
	if err == nil {
		t.Fatal("expected checksum error on line 2")
	}
	var le *LineError
	if !asLineError(err, &le) || le.Line != 2 {
		t.Fatalf("error = %v, want line 2", err)
	}
	if v, ok := img.Program.Get(0); !ok || v != 0x2805 {
		t.Errorf("line 1 not kept: pgm[0] = 0x%04X, %v", v, ok)
	}
	if img.Program.Defined(1) {
		t.Error("line 2 stored despite bad checksum")
	}
}

func asLineError(err error, target **LineError) bool {
	le, ok := err.(*LineError)
	if ok {
		*target = le
	}
	return ok
}

func fill(img *memory.Image, seed uint32) {
	for i, r := range img.Regions() {
		for j := 0; j < r.Len(); j++ {
			// Leave holes and runs of varied length.
			if (j+i)%7 == 3 || j%23 > 17 {
				continue
			}
			_ = r.Set(j, seed*uint32(j+1)+uint32(i*31))
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		device string
		format Format
	}{
		{"pic16f628a", FormatAuto},
		{"pic16f628a", IHX8M},
		{"pic16f628a", IHX32},
		{"pic16f877a", IHX16},
		{"pic12f509", FormatAuto},
		{"pic12f509", IHX8M},
		{"pic18f452", FormatAuto},
		{"pic18f2550", IHX32},
		{"dspic30f2010", FormatAuto},
	}

	for _, tt := range tests {
		t.Run(tt.device+"/"+tt.format.String(), func(t *testing.T) {
			img := newImage(t, tt.device)
			fill(img, 0x1357)

			var buf bytes.Buffer
			if err := Write(&buf, img, SaveOptions{Format: tt.format}); err != nil {
				t.Fatalf("Write() error = %v", err)
			}

			got := newImage(t, tt.device)
			sum, err := LoadReader(&buf, got)
			if err != nil {
				t.Fatalf("LoadReader() error = %v", err)
			}
			if !sum.EOF {
				t.Error("output lacks EOF record")
			}
			for _, pair := range [][2]*memory.Region{
				{img.Program, got.Program},
				{img.ID, got.ID},
				{img.Config, got.Config},
				{img.Data, got.Data},
			} {
				if pair[0] == img.Data && img.Device.Family == device.Family12 {
					continue
				}
				if !pair[0].Equal(pair[1]) {
					t.Errorf("%s region differs after round trip", pair[0].Name())
				}
			}
		})
	}
}

func TestRoundTrip_SkipOnes(t *testing.T) {
	img := newImage(t, "pic16f628a")
	_ = img.Program.Set(0, 0x2805)
	_ = img.Program.Set(1, 0x3fff)
	_ = img.Data.Set(0, 0xff)
	_ = img.Data.Set(1, 0x12)

	var buf bytes.Buffer
	if err := Write(&buf, img, SaveOptions{SkipOnes: true}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got := newImage(t, "pic16f628a")
	if _, err := LoadReader(&buf, got); err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if v, ok := got.Program.Get(0); !ok || v != 0x2805 {
		t.Errorf("pgm[0] = 0x%04X, %v", v, ok)
	}
	if got.Program.Defined(1) {
		t.Error("erased program word was written")
	}
	if got.Data.Defined(0) {
		t.Error("erased data byte was written")
	}
	if v, ok := got.Data.Get(1); !ok || v != 0x12 {
		t.Errorf("data[1] = 0x%02X, %v", v, ok)
	}
}

func TestWrite_Layout(t *testing.T) {
	img := newImage(t, "pic16f84a")
	for i := 0; i < 10; i++ {
		_ = img.Program.Set(i, 0x3fff)
	}
	_ = img.Config.Set(0, 0x3ff1)

	var buf bytes.Buffer
	if err := Write(&buf, img, SaveOptions{Format: IHX8M}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := ":10000000FF3FFF3FFF3FFF3FFF3FFF3FFF3FFF3F00\n" +
		":04001000FF3FFF3F70\n" +
		":02400E00F13F80\n" +
		":00000001FF\n"
	if buf.String() != want {
		t.Errorf("Write() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWrite_ExtendedRecords(t *testing.T) {
	img := newImage(t, "pic18f452")
	_ = img.Program.Set(0, 0x12)
	_ = img.Config.Set(0, 0x34)

	var buf bytes.Buffer
	if err := Write(&buf, img, SaveOptions{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := ":020000040000FA\n" +
		":0100000012ED\n" +
		":020000040030CA\n" +
		":0100000034CB\n" +
		":00000001FF\n"
	if buf.String() != want {
		t.Errorf("Write() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWrite_NeedsIHX32(t *testing.T) {
	img := newImage(t, "pic18f452")
	_ = img.Config.Set(0, 0x34)

	err := Write(io.Discard, img, SaveOptions{Format: IHX8M})
	if err == nil {
		t.Fatal("Write() accepted address above 16 bits")
	}
	if picerr.KindOf(err) != picerr.Usage {
		t.Errorf("error kind = %v, want usage", picerr.KindOf(err))
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "IHX8M": IHX8M, "inhx32": IHX32, "ihx16": IHX16} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("srec"); err == nil {
		t.Error("ParseFormat(srec) succeeded")
	}
}
