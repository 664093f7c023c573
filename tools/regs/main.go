//go:build unix

// Package regs drives a TAUJ0 register block from the development host,
// usually a register snapshot file, or a live unit through a memory device.
package regs

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/clktmr/rh850/hostmem"
	"github.com/clktmr/rh850/tauj"
)

const usageString = `TAUJ0 register utility.

Usage:

	%s [flags] <command> [arguments]

The commands are:

	dump			print all registers
	init <us>		stop channel 0 and configure an interval
	interval <us>		set the interval of channel 0
	start			start channel 0
	stop			stop channel 0

All commands except dump print the registers afterwards.

The register block is normally backed by a snapshot file holding it at offset
-base. Character devices like /dev/mem reach real hardware and are only mapped
if -base is given explicitly.

`

var (
	flags = flag.NewFlagSet("regs", flag.ExitOnError)

	mem  = flags.String("mem", "", "Register snapshot file or memory device (required)")
	base = flags.String("base", "0", "Offset of the register block in mem, e.g. "+fmt.Sprintf("%#x", tauj.BaseAddr)+" for /dev/mem")
)

var (
	errUsage  = errors.New("invalid arguments")
	errDevice = errors.New("device needs an explicit -base")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "regs")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() < 1 || *mem == "" {
		flags.Usage()
		os.Exit(1)
	}

	baseSet := false
	flags.Visit(func(f *flag.Flag) { baseSet = baseSet || f.Name == "base" })
	if err := checkBacking(*mem, baseSet); err != nil {
		log.Fatalln(err)
	}

	addr, err := strconv.ParseUint(*base, 0, 32)
	if err != nil {
		log.Fatalln("base:", err)
	}

	w, err := hostmem.Open(*mem, int64(addr), int(tauj.Size))
	if err != nil {
		log.Fatalln(err)
	}
	defer w.Close()

	err = run(tauj.Bind(w.Pointer()), flags.Args(), os.Stdout)
	if errors.Is(err, errUsage) {
		fmt.Fprintln(flags.Output(), err)
		flags.Usage()
		w.Close()
		os.Exit(1)
	}
	if err != nil {
		w.Close()
		log.Fatalln(err)
	}
}

// checkBacking refuses to map a character device at a default offset. On a
// development host the physical memory at the target's base address belongs
// to something else entirely.
func checkBacking(path string, baseSet bool) error {
	fi, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil // created as snapshot file
	}
	if err != nil {
		return err
	}
	if fi.Mode()&os.ModeCharDevice != 0 && !baseSet {
		return fmt.Errorf("%s: %w", path, errDevice)
	}
	return nil
}

func run(r *tauj.Registers, args []string, out io.Writer) error {
	interval := func() (uint32, error) {
		if len(args) != 2 {
			return 0, fmt.Errorf("%s: expects one interval argument: %w", args[0], errUsage)
		}
		us, err := strconv.ParseUint(args[1], 0, 32)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", args[0], err)
		}
		return uint32(us), nil
	}

	switch args[0] {
	case "dump":
	case "init":
		us, err := interval()
		if err != nil {
			return err
		}
		r.Init(us)
	case "interval":
		us, err := interval()
		if err != nil {
			return err
		}
		r.SetInterval(us)
	case "start":
		r.Start()
	case "stop":
		r.Stop()
	default:
		return fmt.Errorf("unknown command %s: %w", args[0], errUsage)
	}

	dump(r, out)
	return nil
}

func dump(r *tauj.Registers, out io.Writer) {
	for _, reg := range tauj.Layout() {
		v := r.Lookup(reg.Name).Load()
		fmt.Fprintf(out, "%-5s +0x%02x  0x%08x", reg.Name, reg.Offset, v)
		switch reg.Name {
		case "CDR0":
			fmt.Fprintf(out, "  %d us", v/tauj.TicksPerMicrosecond)
		case "CMOR0":
			fmt.Fprintf(out, "  cks=%d md=%d", (v&uint32(tauj.CKS))>>tauj.CKSPos, v&uint32(tauj.MD0))
		}
		fmt.Fprintln(out)
	}
}
