package main

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/danswartzendruber/liner"
)

/*

	The I/O facade.

	The interpreter core only ever talks to the console port
	(readLine, readCh, checkCh, writeCh), the display driver, the
	printer writer and the file store.  Output fans out over the od
	bitmask, input is selected by id.

*/

func (ip *interp) ioInit() {

	ip.idd = ISERIAL
	ip.odd = OSERIAL

	ip.ioDefaults()
}

func (ip *interp) ioDefaults() {

	ip.od = ip.odd
	ip.id = ip.idd
}

// output one character to every selected sink
func (ip *interp) outch(c byte) {

	if ip.od&OSERIAL != 0 {
		ip.cons.writeCh(c)
	}
	if ip.od&OPRT != 0 {
		ip.prt.Write([]byte{c})
	}
	if ip.od&OFILE != 0 {
		ip.fileWrite(c)
	}
	if ip.od&ODSP != 0 {
		ip.dsp.write(c)
	}
}

// send a newline
func (ip *interp) outcr() {

	ip.outch('\n')
}

// send a space
func (ip *interp) outspc() {

	ip.outch(' ')
}

// output l characters of a byte string - basic style
func (ip *interp) outs(b []byte, l int) {

	for i := 0; i < l; i++ {
		ip.outch(b[i])
	}
}

// output a string - Go style
func (ip *interp) outsc(s string) {

	for i := 0; i < len(s); i++ {
		ip.outch(s[i])
	}
}

// output a string in a formatted box of width f
func (ip *interp) outscf(s string, f int) {

	ip.outsc(s)

	for i := len(s); i < f; i++ {
		ip.outspc()
	}
}

// get one character, blocking, from the selected input
func (ip *interp) inch() byte {

	if ip.id == IFILE {
		return ip.fileRead()
	}

	return ip.cons.readCh()
}

// non-blocking peek at the selected input
func (ip *interp) checkch() byte {

	if ip.id == IFILE {
		return 1
	}

	return ip.cons.checkCh()
}

//
// Read an entire line into b.  Byte 0 receives the length, the text
// starts at byte 1 and is NUL terminated.  Console input goes
// through the console port so line editing works; file input reads
// byte-wise until end of line
//

func (ip *interp) ins(b []byte, nb int, prompt string) {

	if ip.id == IFILE {
		i := 1
		for i < nb-1 {
			c := ip.fileRead()
			if ip.ert != 0 || c == '\n' || c == '\r' {
				break
			}
			b[i] = c
			i++
		}
		b[i] = 0
		b[0] = byte(i - 1)
		return
	}

	line, _ := ip.cons.readLine(prompt)

	if len(line) > nb-2 {
		line = line[:nb-2]
	}

	copy(b[1:], line)
	b[1+len(line)] = 0
	b[0] = byte(len(line))
}

//
// Reading a number from a character buffer.  The number of digits
// consumed is passed back so the tokenizer can advance its cursor
//

func parseNumber(c []byte) (number, int) {

	var r number
	var nd int

	for nd < len(c) && c[nd] >= '0' && c[nd] <= '9' {
		r = r*10 + number(c[nd]-'0')
		nd++
		if nd == SBUFSIZE {
			break
		}
	}

	return r, nd
}

// convert a number to its text form
func writeNumber(v number) string {

	return strconv.FormatInt(int64(v), 10)
}

//
// Print a number, padding on the right with spaces to the current
// field width - number formats in Palo Alto style
//

func (ip *interp) outnumber(n number) {

	s := writeNumber(n)

	ip.outsc(s)

	for nd := len(s); nd < int(ip.form); nd++ {
		ip.outspc()
	}
}

//
// Read a number from input.  Returns BREAKCHAR if the user typed it
// to abort the statement, 1 on an empty line, 0 otherwise.  Garbage
// input prints the number error and prompts again
//

func (ip *interp) innumber(r *number, prompt string) byte {

	var buf [SBUFSIZE]byte

	for {
		ip.ins(buf[:], SBUFSIZE, prompt)

		i := 1
		s := number(1)

		for buf[i] == ' ' || buf[i] == '\t' {
			i++
		}
		if buf[i] == BREAKCHAR {
			return BREAKCHAR
		}
		if buf[i] == 0 {
			*r = 0
			return 1
		}
		if buf[i] == '-' {
			s = -1
			i++
		}

		if buf[i] >= '0' && buf[i] <= '9' {
			*r, _ = parseNumber(buf[i:])
			*r *= s
			return 0
		}

		ip.printMessage(ENUMBER)
		ip.outspc()
		ip.printMessage(EGENERAL)
		ip.outcr()
	}
}

/*

	The console ports.

	termConsole drives a real terminal: two liner instances, one
	with history for the REPL and one without for INPUT while a
	program runs, created and
	closed in LIFO order so the terminal ends up back in cooked mode.

	stdioConsole is the fallback when standard input is not a
	terminal, so programs can be piped in.

*/

type termConsole struct {
	parserLiner *liner.State
	inputLiner  *liner.State
	running     *bool
	pending     byte
}

func newTermConsole(running *bool) *termConsole {

	tc := &termConsole{running: running}

	tc.parserLiner = setupLiner(false)
	tc.inputLiner = setupLiner(true)

	return tc
}

func setupLiner(allowCtrlC bool) *liner.State {

	l := liner.NewLiner()

	l.SetMultiLineMode(allowCtrlC)

	return l
}

func (tc *termConsole) readLine(prompt string) (string, bool) {

	l := tc.parserLiner
	history := true

	//
	// while a program runs, INPUT statements read through the
	// history-less liner; in immediate mode the REPL liner serves
	// INPUT too
	//

	if *tc.running {
		l = tc.inputLiner
		history = false
	}

	s, err := l.Prompt(prompt)
	if err != nil {
		if err == io.EOF {
			return "", true
		}
		return "", false
	}

	if history && s != "" {
		l.AppendHistory(s)
	}

	return s, false
}

func (tc *termConsole) readCh() byte {

	if tc.pending != 0 {
		c := tc.pending
		tc.pending = 0
		return c
	}

	var buf [1]byte

	n, err := os.Stdin.Read(buf[:])
	if n == 0 || err != nil {
		return 0
	}

	return buf[0]
}

func (tc *termConsole) checkCh() byte {

	if tc.pending != 0 {
		return tc.pending
	}

	var buf [1]byte

	os.Stdin.SetReadDeadline(time.Now())
	n, _ := os.Stdin.Read(buf[:])
	os.Stdin.SetReadDeadline(time.Time{})

	if n > 0 {
		tc.pending = buf[0]
	}

	return tc.pending
}

func (tc *termConsole) writeCh(c byte) {

	os.Stdout.Write([]byte{c})
}

//
// Close the liner instances in reverse order, to make sure we end
// up back in normal (cooked) terminal mode
//

func (tc *termConsole) cleanup() {

	cleanupLiner(&tc.inputLiner)
	cleanupLiner(&tc.parserLiner)
}

func cleanupLiner(linerState **liner.State) {

	if *linerState != nil {
		(*linerState).Close()
		*linerState = nil
	}
}

type stdioConsole struct {
	in  *bufio.Reader
	out *bufio.Writer
}

func newStdioConsole() *stdioConsole {

	return &stdioConsole{
		in:  bufio.NewReader(os.Stdin),
		out: bufio.NewWriter(os.Stdout),
	}
}

func (sc *stdioConsole) readLine(prompt string) (string, bool) {

	sc.out.WriteString(prompt)
	sc.out.Flush()

	line, err := sc.in.ReadString('\n')
	if err != nil && line == "" {
		return "", true
	}

	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}

	return line, false
}

func (sc *stdioConsole) readCh() byte {

	c, err := sc.in.ReadByte()
	if err != nil {
		return 0
	}

	return c
}

func (sc *stdioConsole) checkCh() byte {

	if sc.in.Buffered() == 0 {
		return 0
	}

	b, err := sc.in.Peek(1)
	if err != nil {
		return 0
	}

	return b[0]
}

func (sc *stdioConsole) writeCh(c byte) {

	sc.out.WriteByte(c)
	if c == '\n' {
		sc.out.Flush()
	}
}

func (sc *stdioConsole) cleanup() {

	sc.out.Flush()
}
