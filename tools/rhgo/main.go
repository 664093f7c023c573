package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/clktmr/rh850/tools/flash"
	"github.com/clktmr/rh850/tools/manual"
	"github.com/clktmr/rh850/tools/regs"
)

const usageString = `rhgo is a tool for bringing up RH850 boards.

Usage:

	%s <command> [arguments]

The commands are:

	flash    convert elf to flash images and optionally run them
	manual   build and search a page index of the hardware manual
	regs     inspect and drive the TAUJ0 registers from the host
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "flash":
		flash.Main(flag.Args())
	case "manual":
		manual.Main(flag.Args())
	case "regs":
		regs.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
