// Copyright 2024 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flash

import (
	"bufio"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"time"

	"github.com/buildkite/shellwords"
)

// runImage runs cmdline with the image path appended, e.g. a flash programmer
// followed by a debugger session. Its output is passed through and scanned
// for the test result. Exits with the result.
func runImage(cmdline, path string) {
	args, err := shellwords.Split(cmdline)
	if err != nil {
		log.Fatalln("run:", err)
	}
	if len(args) == 0 {
		log.Fatalln("run: empty command")
	}
	args = append(args, path)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stderr = os.Stderr
	processGroupEnable(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Fatalln("open stdout:", err)
	}

	sigintr := make(chan os.Signal, 1)
	signal.Notify(sigintr, os.Interrupt)

	if err := cmd.Start(); err != nil {
		log.Fatalln("start command:", err)
	}

	go func() {
		<-sigintr
		stdout.Close()
		if err := processGroupKill(cmd); err != nil {
			log.Println(err)
		}
	}()

	code := scanResult(bufio.NewScanner(stdout), func() {
		go func() {
			// let the command finish its output
			time.Sleep(500 * time.Millisecond)
			stdout.Close()
			if err := processGroupKill(cmd); err != nil {
				log.Println(err)
			}
		}()
	})
	cmd.Wait()
	os.Exit(code)
}

// scanResult logs every line and returns the exit code once a result line is
// seen. done is called on the first result line.
func scanResult(scanner *bufio.Scanner, done func()) int {
	exiting := false
	code := 0
	for scanner.Scan() {
		line := scanner.Text()
		log.Println(line)
		if exiting {
			continue
		}
		switch {
		case strings.HasPrefix(line, "fatal error:"), strings.HasPrefix(line, "panic:"), line == "FAIL":
			code = 1
			fallthrough
		case line == "PASS":
			exiting = true
			done()
		}
	}
	return code
}
