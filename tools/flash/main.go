// Copyright 2024 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flash converts the firmware's ELF file to an image for the flash
// programmer.
package flash

import (
	"debug/elf"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

const usageString = `ELF to RH850 flash image converter.

Usage: %s [flags] <elffile>

`

var (
	flags = flag.NewFlagSet("flash", flag.ExitOnError)

	format = flags.String("format", "hex", "hex | bin")
	check  = flags.Bool("check", true, "Check placement of the startup test variables")
	list   = flags.Bool("list", false, "List segments with their CRC-8")
	run    = flags.String("run", "", "Run the image with command")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "flash")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(1)
	}
	infile := flags.Arg(0)

	outfile, _ := strings.CutSuffix(infile, ".elf")
	outfile += "." + *format

	elffile, err := elf.Open(infile)
	if err != nil {
		log.Fatalln(err)
	}
	defer elffile.Close()

	if *check {
		if err := checkStartup(elffile); err != nil {
			log.Fatalln("check:", err)
		}
	}

	segs, err := loadSegments(elffile)
	if err != nil {
		log.Fatalln("load:", err)
	}
	if *list {
		writeListing(os.Stdout, segs)
	}

	out, err := os.Create(outfile)
	if err != nil {
		log.Fatalln(err)
	}
	err = writeImage(out, *format, segs, uint32(elffile.Entry))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outfile)
		log.Fatalln("write image:", err)
	}

	if *run != "" {
		runImage(*run, outfile)
	}
}

func writeImage(w io.Writer, format string, segs []segment, entry uint32) error {
	switch format {
	case "hex":
		return writeHex(w, segs, entry)
	case "bin":
		return writeBin(w, segs)
	default:
		return fmt.Errorf("%s format not supported", format)
	}
}
