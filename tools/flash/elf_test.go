package flash

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"
)

// testImage describes a minimal RH850 firmware ELF file.
type testImage struct {
	text       []byte
	data       []byte // dataTestVar at offset 4
	bssSection int    // section index holding bssTestVar
	omitData   bool   // leave dataTestVar out of the symbol table
}

const (
	textAddr = 0x0000_0000
	dataAddr = 0xfebd_0000
	dataLoad = 0x0000_1000 // load address of .data in flash
	bssAddr  = 0xfebd_0100

	secText = 1
	secData = 2
	secBss  = 3
)

func newTestImage() testImage {
	return testImage{
		text:       []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		data:       []byte{0xdd, 0xcc, 0xbb, 0xaa, 0x78, 0x56, 0x34, 0x12},
		bssSection: secBss,
	}
}

// build assembles a little-endian ELF32 file with sections .text, .data, .bss
// and a symbol table, and parses it back.
func (img testImage) build(t *testing.T) *elf.File {
	t.Helper()

	le := binary.LittleEndian
	const (
		ehsize  = 52
		phsize  = 32
		shsize  = 40
		symsize = 16
		nprogs  = 3
	)

	strtab := []byte("\x00main.bssTestVar\x00main.dataTestVar\x00")
	shstrtab := []byte("\x00.text\x00.data\x00.bss\x00.symtab\x00.strtab\x00.shstrtab\x00")
	name := func(tab []byte, s string) uint32 {
		return uint32(bytes.Index(tab, []byte("\x00"+s+"\x00")) + 1)
	}

	syms := []elf.Sym32{
		{},
		{Name: name(strtab, "main.bssTestVar"), Value: bssAddr, Size: 4,
			Info: elf.ST_INFO(elf.STB_LOCAL, elf.STT_OBJECT), Shndx: uint16(img.bssSection)},
	}
	if !img.omitData {
		syms = append(syms, elf.Sym32{Name: name(strtab, "main.dataTestVar"), Value: dataAddr + 4, Size: 4,
			Info: elf.ST_INFO(elf.STB_LOCAL, elf.STT_OBJECT), Shndx: secData})
	}
	var symtab bytes.Buffer
	for _, s := range syms {
		binary.Write(&symtab, le, s)
	}

	textOff := uint32(ehsize + nprogs*phsize)
	dataOff := textOff + uint32(len(img.text))
	symOff := dataOff + uint32(len(img.data))
	strOff := symOff + uint32(symtab.Len())
	shstrOff := strOff + uint32(len(strtab))
	shOff := (shstrOff + uint32(len(shstrtab)) + 3) &^ 3

	sections := []elf.Section32{
		{},
		{Name: name(shstrtab, ".text"), Type: uint32(elf.SHT_PROGBITS), Flags: uint32(elf.SHF_ALLOC | elf.SHF_EXECINSTR),
			Addr: textAddr, Off: textOff, Size: uint32(len(img.text)), Addralign: 2},
		{Name: name(shstrtab, ".data"), Type: uint32(elf.SHT_PROGBITS), Flags: uint32(elf.SHF_ALLOC | elf.SHF_WRITE),
			Addr: dataAddr, Off: dataOff, Size: uint32(len(img.data)), Addralign: 4},
		{Name: name(shstrtab, ".bss"), Type: uint32(elf.SHT_NOBITS), Flags: uint32(elf.SHF_ALLOC | elf.SHF_WRITE),
			Addr: bssAddr, Off: symOff, Size: 8, Addralign: 4},
		{Name: name(shstrtab, ".symtab"), Type: uint32(elf.SHT_SYMTAB), Off: symOff, Size: uint32(symtab.Len()),
			Link: 5, Info: 1, Addralign: 4, Entsize: symsize},
		{Name: name(shstrtab, ".strtab"), Type: uint32(elf.SHT_STRTAB), Off: strOff, Size: uint32(len(strtab)), Addralign: 1},
		{Name: name(shstrtab, ".shstrtab"), Type: uint32(elf.SHT_STRTAB), Off: shstrOff, Size: uint32(len(shstrtab)), Addralign: 1},
	}

	progs := [nprogs]elf.Prog32{
		{Type: uint32(elf.PT_LOAD), Off: textOff, Vaddr: textAddr, Paddr: textAddr,
			Filesz: uint32(len(img.text)), Memsz: uint32(len(img.text)), Flags: uint32(elf.PF_R | elf.PF_X), Align: 4},
		{Type: uint32(elf.PT_LOAD), Off: dataOff, Vaddr: dataAddr, Paddr: dataLoad,
			Filesz: uint32(len(img.data)), Memsz: uint32(len(img.data)), Flags: uint32(elf.PF_R | elf.PF_W), Align: 4},
		{Type: uint32(elf.PT_LOAD), Off: symOff, Vaddr: bssAddr, Paddr: bssAddr,
			Filesz: 0, Memsz: 8, Flags: uint32(elf.PF_R | elf.PF_W), Align: 4},
	}

	hdr := elf.Header32{
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_V850),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     textAddr,
		Phoff:     ehsize,
		Shoff:     shOff,
		Ehsize:    ehsize,
		Phentsize: phsize,
		Phnum:     nprogs,
		Shentsize: shsize,
		Shnum:     uint16(len(sections)),
		Shstrndx:  uint16(len(sections) - 1),
	}
	copy(hdr.Ident[:], elf.ELFMAG)
	hdr.Ident[elf.EI_CLASS] = byte(elf.ELFCLASS32)
	hdr.Ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	hdr.Ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)

	var buf bytes.Buffer
	binary.Write(&buf, le, hdr)
	binary.Write(&buf, le, progs)
	buf.Write(img.text)
	buf.Write(img.data)
	buf.Write(symtab.Bytes())
	buf.Write(strtab)
	buf.Write(shstrtab)
	buf.Write(make([]byte, int(shOff)-buf.Len()))
	binary.Write(&buf, le, sections)

	f, err := elf.NewFile(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal("parse test image:", err)
	}
	return f
}
