package flash

import (
	"debug/elf"
	"errors"
	"fmt"

	"github.com/clktmr/rh850/boot"
)

// Symbols of the firmware's startup test variables.
const (
	bssSymbol  = "main.bssTestVar"
	dataSymbol = "main.dataTestVar"
)

var (
	ErrNoSymbol   = errors.New("symbol not found")
	ErrPlacement  = errors.New("symbol in wrong section type")
	ErrInitialVal = errors.New("wrong initial value")
)

// checkStartup verifies the image gives startup what the boot self-test
// expects: the bss variable in a section startup clears, the data variable in
// a section startup copies, holding its declared value.
func checkStartup(f *elf.File) error {
	syms, err := f.Symbols()
	if err != nil {
		return err
	}

	bss, err := lookupSection(f, syms, bssSymbol)
	if err != nil {
		return err
	}
	if bss.Type != elf.SHT_NOBITS {
		return fmt.Errorf("%s in %s (%v): %w", bssSymbol, bss.Name, bss.Type, ErrPlacement)
	}

	data, err := lookupSection(f, syms, dataSymbol)
	if err != nil {
		return err
	}
	if data.Type != elf.SHT_PROGBITS || data.Flags&elf.SHF_WRITE == 0 {
		return fmt.Errorf("%s in %s (%v): %w", dataSymbol, data.Name, data.Type, ErrPlacement)
	}

	var buf [4]byte
	sym := findSymbol(syms, dataSymbol)
	if _, err := data.ReadAt(buf[:], int64(sym.Value-data.Addr)); err != nil {
		return fmt.Errorf("read %s: %w", dataSymbol, err)
	}
	if v := f.ByteOrder.Uint32(buf[:]); v != boot.ExpectedData {
		return fmt.Errorf("%s = %#x, expected %#x: %w", dataSymbol, v, boot.ExpectedData, ErrInitialVal)
	}
	return nil
}

func findSymbol(syms []elf.Symbol, name string) *elf.Symbol {
	for i := range syms {
		if syms[i].Name == name {
			return &syms[i]
		}
	}
	return nil
}

func lookupSection(f *elf.File, syms []elf.Symbol, name string) (*elf.Section, error) {
	sym := findSymbol(syms, name)
	if sym == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNoSymbol)
	}
	if sym.Section >= elf.SHN_LORESERVE || int(sym.Section) >= len(f.Sections) {
		return nil, fmt.Errorf("%s in special section %v: %w", name, sym.Section, ErrPlacement)
	}
	return f.Sections[sym.Section], nil
}
