package flash

import (
	"bufio"
	"cmp"
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/marcinbor85/gohex"
	"github.com/sigurn/crc8"
)

// CRC-8/SAE-J1850, the CRC8 of the AUTOSAR CRC library.
var blockCRC8 = crc8.MakeTable(crc8.Params{Poly: 0x1d, Init: 0xff, RefIn: false, RefOut: false, XorOut: 0xff, Check: 0x4b, Name: "CRC-8/SAE-J1850"})

// A segment is a contiguous block of flash content at its load address.
type segment struct {
	addr uint32
	data []byte
}

func (s segment) end() uint64 { return uint64(s.addr) + uint64(len(s.data)) }

// loadSegments reads the file contents of all loadable program segments.
// Initialized data is placed at its load address, which is where startup
// copies it from.
func loadSegments(f *elf.File) ([]segment, error) {
	var segs []segment
	for _, p := range f.Progs {
		if p.Type != elf.PT_LOAD || p.Filesz == 0 {
			continue
		}
		if p.Paddr+p.Filesz > 1<<32 {
			return nil, fmt.Errorf("segment at %#x exceeds address space", p.Paddr)
		}
		data := make([]byte, p.Filesz)
		if _, err := p.ReadAt(data, 0); err != nil {
			return nil, fmt.Errorf("read segment at %#x: %w", p.Paddr, err)
		}
		segs = append(segs, segment{uint32(p.Paddr), data})
	}
	if len(segs) == 0 {
		return nil, errors.New("no loadable segments")
	}

	slices.SortFunc(segs, func(a, b segment) int { return cmp.Compare(a.addr, b.addr) })
	for i := 1; i < len(segs); i++ {
		if uint64(segs[i].addr) < segs[i-1].end() {
			return nil, fmt.Errorf("segments at %#x and %#x overlap", segs[i-1].addr, segs[i].addr)
		}
	}
	return segs, nil
}

func writeHex(w io.Writer, segs []segment, entry uint32) error {
	mem := gohex.NewMemory()
	mem.SetStartAddress(entry)
	for _, s := range segs {
		if err := mem.AddBinary(s.addr, s.data); err != nil {
			return err
		}
	}
	return mem.DumpIntelHex(w, 16)
}

// writeBin writes a flat image from the lowest to the highest segment
// address. Gaps are filled with the erased flash value.
func writeBin(w io.Writer, segs []segment) error {
	const erased = 0xff

	bw := bufio.NewWriter(w)
	pos := uint64(segs[0].addr)
	for _, s := range segs {
		for ; pos < uint64(s.addr); pos++ {
			bw.WriteByte(erased)
		}
		bw.Write(s.data)
		pos = s.end()
	}
	return bw.Flush()
}

func writeListing(w io.Writer, segs []segment) {
	for _, s := range segs {
		fmt.Fprintf(w, "%08x-%08x %8d bytes  crc8 %02x\n",
			s.addr, s.end()-1, len(s.data), crc8.Checksum(s.data, blockCRC8))
	}
}
