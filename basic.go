package main

import (
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"golang.org/x/term"
)

func main() {

	var progname string

	ip := newInterp(".")

	//
	// crude argument handling: an optional -debug switch and an
	// optional program file to load before the REPL starts
	//

	for _, arg := range os.Args[1:] {
		switch {
		case arg == "-debug":
			ip.traceDump = true

		case progname == "":
			progname = arg

		default:
			crash("Usage: tinybasic [-debug] [program]")
		}
	}

	//
	// Make sure we end up back in normal (cooked) terminal mode,
	// whatever happens
	//

	cleanupHook = ip.cons.cleanup
	defer ip.cons.cleanup()

	// run the signal handling code in a goroutine
	go ip.sigHdlr()

	ip.setup()

	if progname != "" {
		ip.loadProgram(progname)
		if ip.er != 0 {
			ip.resetError()
		}
	}

	// loop forever, or until end of input
	for ip.loop() {
	}
}

func newInterp(dir string) *interp {

	ip := &interp{}

	ip.mem = allocmem()
	ip.memsize = len(ip.mem) - 1
	ip.himem = ip.memsize

	ip.files = newFileStore(dir)

	//
	// the display mirrors the terminal geometry when there is one
	//

	rows, columns := 24, 80
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if c, r, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			rows, columns = r, c
		}
	}
	ip.dsp = newDisplay(rows, columns)
	ip.dsp.setScrollMode(1, 1)

	ip.prt = io.Discard

	if term.IsTerminal(int(os.Stdin.Fd())) {
		ip.cons = newTermConsole(&ip.running)
	} else {
		ip.cons = newStdioConsole()
	}

	ip.start = time.Now()

	ip.ioInit()

	return ip
}

func (ip *interp) sigHdlr() {

	ch := make(chan os.Signal, 1)

	signal.Ignore(syscall.SIGTSTP)

	signal.Notify(ch, syscall.SIGQUIT)
	signal.Notify(ch, syscall.SIGINT)

	for {
		sig := <-ch

		switch sig {

		case syscall.SIGQUIT:
			writeGoroutineStacks() // does not return

		case syscall.SIGINT:
			ip.interrupted = true
		}
	}
}

//
// Dump all goroutine stacks to a file and exit; debugging aid for a
// hung interpreter
//

func writeGoroutineStacks() {

	name := "goroutines-stacks"

	dumpFile, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		crash("Unable to open " + name)
	}

	pprof.Lookup("goroutine").WriteTo(dumpFile, 2)

	crash("Dumping goroutine stacks to " + name + " and exiting")
}

//
// the setup routine: greet, clean memory, check the EEPROM image
// for an autorun program
//

func (ip *interp) setup() {

	ip.printMessage(MGREET)
	ip.outspc()
	ip.printMessage(EOUTOFMEMORY)
	ip.outspc()
	ip.outnumber(number(ip.memsize + 1))
	ip.outspc()
	ip.outnumber(number(ip.files.elength()))
	ip.outcr()

	ip.executeNew()

	if ip.files.eread(0) == 1 {
		// autorun from the EEPROM
		ip.top = ip.files.ereadAddr(1)
		ip.st = SERUN
	}
}

//
// load a program file at startup, the way LOAD tokenizes it
//

func (ip *interp) loadProgram(name string) {

	if !ip.files.openRead(name) {
		ip.errorCode(EFILE)
		return
	}

	for {
		line, ok := ip.files.readLine()
		if !ok {
			break
		}

		n := len(line)
		if n > BUFSIZE-2 {
			n = BUFSIZE - 2
		}
		copy(ip.ibuffer[1:], line[:n])
		ip.ibuffer[1+n] = 0
		ip.ibuffer[0] = byte(n)

		ip.bi = 1
		ip.st = SINT
		ip.nextToken()
		if ip.token == NUMBER {
			ip.storeLine()
		}
		if ip.er != 0 {
			break
		}
	}

	ip.files.closeMode(IOREAD)
}

//
// the loop routine for interactive input: read a line, numbered
// lines go to the editor, everything else is executed immediately
//

func (ip *interp) loop() bool {

	if ip.st != SERUN {

		ip.ioDefaults()

		line, eof := ip.cons.readLine(ip.getMessage(MPROMPT))
		if eof {
			return false
		}

		n := len(line)
		if n > BUFSIZE-2 {
			n = BUFSIZE - 2
		}
		copy(ip.ibuffer[1:], line[:n])
		ip.ibuffer[1+n] = 0
		ip.ibuffer[0] = byte(n)

		ip.bi = 0
		ip.nextToken()

		if ip.token == NUMBER {
			ip.storeLine()
		} else {
			ip.st = SINT
			ip.statement()
		}

		// here, at last, all errors need to be caught
		if ip.er != 0 {
			ip.resetError()
		}

	} else {
		ip.executeRun()
		// cleanup needed after autorun, top was the EEPROM top
		ip.top = 0
	}

	return true
}
