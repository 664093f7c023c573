//go:build !unix

package regs

import "log"

func Main(args []string) {
	log.Fatalln("regs: mapping register windows requires a unix host")
}
