package device

import (
	"strings"
	"testing"

	"github.com/moffa90/go-picprog/picerr"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "upper case", input: "PIC16F628A", want: "pic16f628a"},
		{name: "lower case", input: "pic16f628a", want: "pic16f628a"},
		{name: "mixed case", input: "Pic18F452", want: "pic18f452"},
		{name: "surrounding space", input: " dspic30f2010 ", want: "dspic30f2010"},
		{name: "unknown", input: "pic99x1", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, err := Find(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Find(%q) expected error", tt.input)
				}
				if picerr.KindOf(err) != picerr.Usage {
					t.Errorf("error kind = %v, want usage", picerr.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("Find(%q) error = %v", tt.input, err)
			}
			if got := At(i).Name; got != tt.want {
				t.Errorf("Find(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestFind_SameIndexIgnoringCase(t *testing.T) {
	a, err := Find("PIC16F628A")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Find("pic16f628a")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("Find() indexes differ: %d != %d", a, b)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		family  Family
		id      int
		want    string
		wantErr bool
	}{
		{name: "exact 14-bit", family: Family14, id: 0x1060, want: "pic16f628a"},
		{name: "14-bit with revision", family: Family14, id: 0x1066, want: "pic16f628a"},
		{name: "pic18 revision bit set", family: Family16, id: 0x1113, want: "pic18f2523"},
		{name: "pic18 revision bit clear", family: Family16, id: 0x1103, want: "pic18f2520"},
		{name: "dspic exact", family: Family24, id: 0x0040, want: "dspic30f2010"},
		{name: "dspic needs exact id", family: Family24, id: 0x0041, wantErr: true},
		{name: "wrong family", family: Family16, id: 0x1060, wantErr: true},
		{name: "unknown", family: Family14, id: 0x3fe0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Match(tt.family, tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Match() = %s, expected error", d.Name)
				}
				if !strings.Contains(err.Error(), "unknown") {
					t.Errorf("error %q does not mention unknown", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Match() error = %v", err)
			}
			if d.Name != tt.want {
				t.Errorf("Match() = %s, want %s", d.Name, tt.want)
			}
		})
	}
}

func TestRevision(t *testing.T) {
	d, _ := Lookup("pic16f628a")
	if got := Revision(d, 0x1066); got != 6 {
		t.Errorf("Revision() = %d, want 6", got)
	}
}

func TestDefault(t *testing.T) {
	d, err := Default(Family14)
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "pic16c84" {
		t.Errorf("Default(Family14) = %s, want pic16c84", d.Name)
	}
}

func TestCatalogInvariants(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range All() {
		if seen[d.Name] {
			t.Errorf("duplicate entry %s", d.Name)
		}
		seen[d.Name] = true

		if d.Name != strings.ToLower(d.Name) {
			t.Errorf("%s: name is not lower case", d.Name)
		}
		if d.ConfSize > MaxConfSize {
			t.Errorf("%s: conf size %d exceeds %d", d.Name, d.ConfSize, MaxConfSize)
		}
		if d.IDSize() > MaxIDSize {
			t.Errorf("%s: id size %d exceeds %d", d.Name, d.IDSize(), MaxIDSize)
		}
		switch d.Family {
		case Family12, Family14, Family16, Family24:
		default:
			t.Errorf("%s: bad family %d", d.Name, d.Family)
		}
		if d.Family == Family16 && d.WriteSize == 0 && d.ProgType == Flash18 {
			t.Errorf("%s: pic18 flash part without write size", d.Name)
		}
	}
}

func TestDescriptorHelpers(t *testing.T) {
	multi, _ := Lookup("pic18f452")
	if multi.Panels() != 8*1024 {
		t.Errorf("Panels() = %d, want 8192", multi.Panels())
	}
	single, _ := Lookup("pic18f2550")
	if single.Panels() != single.ProgSize {
		t.Errorf("Panels() = %d, want %d", single.Panels(), single.ProgSize)
	}

	base, _ := Lookup("pic12f509")
	if base.ResetAddress() != 0xfff || base.ConfigAddress() != 0xfff {
		t.Errorf("12-bit reset/config address = 0x%X/0x%X", base.ResetAddress(), base.ConfigAddress())
	}
	if !multi.Family.Wide() || base.Family.Wide() {
		t.Error("Wide() mismatch")
	}
	if Flash4.String() != "flash4" {
		t.Errorf("Flash4.String() = %q", Flash4.String())
	}
}
