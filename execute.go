package main

import (
	"time"
)

/*

	The statement executor.

	statement() processes an entire BASIC statement until the end of
	the line.  A statement function called in the central switch must
	either call nextToken as its last action to feed the loop with a
	new token, or it must return, which means the rest of the line is
	ignored.  LOAD, NEW, END/STOP and RUN return early because they
	have invalidated the token stream.

*/

func (ip *interp) statement() {

	for ip.token != EOL {

		switch ip.token {
		case LINENUMBER:
			ip.nextToken()

		// Palo Alto BASIC language set + BREAK
		case TPRINT:
			ip.executePrint()

		case TLET:
			ip.nextToken()
			if ip.token != ARRAYVAR && ip.token != STRINGVAR &&
				ip.token != VARIABLE {
				ip.errorCode(EUNKNOWN)
				break
			}
			ip.assignment()

		case STRINGVAR, ARRAYVAR, VARIABLE:
			ip.assignment()

		case TINPUT:
			ip.executeInput()

		case TRETURN:
			ip.executeReturn()

		case TGOSUB, TGOTO:
			ip.executeGoto()

		case TIF:
			ip.executeIf()

		case TFOR:
			ip.executeFor()

		case TNEXT:
			ip.executeNext()

		case TBREAK:
			ip.executeBreak()

		case TSTOP, TEND:
			// return here because new input is needed
			ip.ibuffer[0] = 0
			ip.st = SINT
			return

		case TLIST:
			ip.executeList()

		case TNEW:
			ip.executeNew()
			return

		case TCONT, TRUN:
			ip.executeRun()
			return

		case TREM:
			ip.executeRem()

		// Apple 1 language set
		case TDIM:
			ip.executeDim()

		case TCLR:
			ip.executeClr()

		case TTAB:
			ip.executeTab()

		case TPOKE:
			ip.executePoke()

		// proprietary additions
		case TDUMP:
			ip.executeDump()

		case TSAVE:
			ip.executeSave()

		case TLOAD:
			// load doesn't like break as the ibuffer is messed up
			ip.executeLoad()
			return

		case TGET:
			ip.executeGet()

		case TPUT:
			ip.executePut()

		case TSET:
			ip.executeSet()

		case TCLS:
			ip.outch(12)
			ip.nextToken()

		// hardware I/O
		case TDWRITE:
			ip.executeDwrite()

		case TAWRITE:
			ip.executeAwrite()

		case TPINM:
			ip.executePinm()

		case TDELAY:
			ip.executeDelay()

		case TTONE:
			ip.executeTone()

		// file DOS functions
		case TCATALOG:
			ip.executeCatalog()

		case TDELETE:
			ip.executeDelete()

		case TOPEN:
			ip.executeOpen()

		case TCLOSE:
			ip.executeClose()

		// low level functions
		case TCALL:
			ip.executeCall()

		case THELP:
			ip.executeHelp()

		// and all the rest
		case UNKNOWN:
			ip.errorCode(EUNKNOWN)
			return

		case ':':
			ip.nextToken()

		default:
			// very tolerant - tokens are just skipped
			ip.nextToken()
		}

		ip.numStatements++

		//
		// entering BREAKCHAR at runtime stops the program, as does
		// an interrupt posted by the signal handler
		//

		if ip.st == SRUN || ip.st == SERUN {
			if ip.interrupted {
				ip.interrupted = false
				ip.st = SINT
				return
			}
			if ip.checkch() == BREAKCHAR {
				ip.st = SINT
				ip.xc = ip.inch()
				return
			}
		}

		if ip.er != 0 {
			return
		}
	}
}

/*

	print
	print [# expression] [& expression] [value [,;] ]*

*/

func (ip *interp) executePrint() {

	semicolon := false
	modifier := 0

	ip.form = 0
	oldod := ip.od

	ip.nextToken()

	numeric := false

	for {
		if ip.termSymbol() {
			if !semicolon {
				ip.outcr()
			}
			ip.nextToken()
			ip.od = oldod
			return
		}
		semicolon = false

		if ip.stringValue() {
			if ip.er != 0 {
				return
			}
			ip.outs(ip.ir2, int(ip.pop()))
			ip.nextToken()
			numeric = false
		} else if ip.token == '#' || ip.token == '&' {

			// modifiers of the print statement
			modifier = ip.token
			ip.nextToken()
			ip.expression()
			if ip.er != 0 {
				return
			}
			switch modifier {
			case '#':
				ip.form = ip.pop()
			case '&':
				ip.od = int(ip.pop())
			}
			continue
		} else if ip.token != ',' && ip.token != ';' {
			ip.expression()
			if ip.er != 0 {
				return
			}
			ip.outnumber(ip.pop())
			numeric = true
		}

		if ip.token == ',' {
			if modifier == 0 {
				ip.outspc()
			}
			ip.nextToken()
		}
		if ip.token == ';' {
			semicolon = true
			// numbers keep their classic trailing separator space
			if numeric && ip.form == 0 {
				ip.outspc()
			}
			ip.nextToken()
		}
		modifier = 0
	}
}

/*

	assignment code for the various lefthand and righthand sides.

	lefthandSide determines the index the value is to be assigned to
	and whether the target is a "pure" subscriptless string.

*/

func (ip *interp) lefthandSide(i *int, ps *bool) {

	switch ip.token {
	case VARIABLE:
		ip.nextToken()

	case ARRAYVAR:
		ip.nextToken()
		args := ip.parseSubscripts()
		ip.nextToken()
		if ip.er != 0 {
			return
		}
		if args != 1 {
			ip.errorCode(EARGS)
			return
		}
		*i = int(ip.pop())

	case STRINGVAR:
		ip.nextToken()
		args := ip.parseSubscripts()
		if ip.er != 0 {
			return
		}
		switch args {
		case 0:
			*i = 1
			*ps = true
		case 1:
			*ps = false
			ip.nextToken()
			*i = int(ip.pop())
		default:
			ip.errorCode(EARGS)
			return
		}

	default:
		ip.errorCode(EUNKNOWN)
	}
}

func (ip *interp) assignNumber(t int, xcl, ycl byte, i int, ps bool) {

	switch t {
	case VARIABLE:
		ip.setVar(xcl, ycl, ip.pop())

	case ARRAYVAR:
		v := ip.pop()
		ip.array('s', xcl, ycl, i, &v)

	case STRINGVAR:
		ir := ip.getString(xcl, ycl, i)
		if ip.er != 0 {
			return
		}
		ir[0] = byte(ip.pop())
		if ps {
			ip.setStringLength(xcl, ycl, 1)
		} else if ip.lenString(xcl, ycl) < i && i < ip.stringDim(xcl, ycl) {
			ip.setStringLength(xcl, ycl, i)
		}
	}
}

// the core assignment function
func (ip *interp) assignment() {

	// remember the left hand side token until the end of the statement
	t := ip.token
	ps := true
	xcl := ip.xc
	ycl := ip.yc
	i := 1

	ip.lefthandSide(&i, &ps)
	if ip.er != 0 {
		return
	}

	if ip.token != '=' {
		ip.errorCode(EUNKNOWN)
		return
	}
	ip.nextToken()

	switch t {
	case VARIABLE, ARRAYVAR:
		// the lefthandside is a scalar, evaluate the righthandside
		// as a number
		ip.expression()
		if ip.er != 0 {
			return
		}
		ip.assignNumber(t, xcl, ycl, i, ps)

	case STRINGVAR:
		// we try to evaluate as a string value first
		s := ip.stringValue()
		if ip.er != 0 {
			return
		}

		// and then as an expression
		if !s {
			ip.expression()
			if ip.er != 0 {
				return
			}
			ip.assignNumber(t, xcl, ycl, i, ps)
			break
		}

		// the string righthandside - how long is it
		lensource := int(ip.pop())

		// the destination of the lefthandside
		ir := ip.getString(xcl, ycl, i)
		if ip.er != 0 {
			return
		}

		// the length of the original string
		lendest := ip.lenString(xcl, ycl)

		// does the source fit into the destination
		if i+lensource-1 > ip.stringDim(xcl, ycl) {
			ip.errorCode(ERANGE)
			return
		}

		//
		// the source may alias the destination, so the copy is
		// direction safe: ascending when the source lies behind the
		// destination, descending otherwise
		//

		if int(ip.x) > i {
			for j := 0; j < lensource; j++ {
				ir[j] = ip.ir2[j]
			}
		} else {
			for j := lensource - 1; j >= 0; j-- {
				ir[j] = ip.ir2[j]
			}
		}

		// substring assignment extends but never truncates
		newlength := lendest
		if i+lensource > lendest {
			newlength = i + lensource - 1
		}

		ip.setStringLength(xcl, ycl, newlength)
	}

	ip.nextToken()
}

/*

	input [& expression ,] ["string" ,] variable [, ...]

*/

func (ip *interp) executeInput() {

	oldid := -1

	ip.nextToken()

	// modifiers of the input statement
	if ip.token == '&' {
		ip.nextToken()
		ip.expression()
		if ip.er != 0 {
			return
		}
		oldid = ip.id
		ip.id = int(ip.pop())
		if ip.token != ',' {
			ip.errorCode(EUNKNOWN)
			return
		}
		ip.nextToken()
	}

	prompt := func() string {
		if ip.id != IFILE {
			return "? "
		}
		return ""
	}

	for {
		if ip.token == STRING && ip.id != IFILE {
			ip.outs(ip.ir, int(ip.x))
			ip.nextToken()
			if ip.token != ',' && ip.token != ';' {
				ip.errorCode(EUNKNOWN)
				return
			}
			ip.nextToken()
		}

		switch ip.token {
		case VARIABLE:
			var v number
			if ip.innumber(&v, prompt()) == BREAKCHAR {
				ip.setVar(ip.xc, ip.yc, 0)
				ip.st = SINT
				ip.nextToken()
				if oldid != -1 {
					ip.id = oldid
				}
				return
			}
			ip.setVar(ip.xc, ip.yc, v)

		case ARRAYVAR:
			xcl := ip.xc
			ycl := ip.yc
			ip.nextToken()
			args := ip.parseSubscripts()
			if ip.er != 0 {
				return
			}
			if args != 1 {
				ip.errorCode(EARGS)
				return
			}

			var v number
			if ip.innumber(&v, prompt()) == BREAKCHAR {
				v = 0
				ip.array('s', xcl, ycl, int(ip.pop()), &v)
				ip.st = SINT
				ip.nextToken()
				if oldid != -1 {
					ip.id = oldid
				}
				return
			}
			ip.array('s', xcl, ycl, int(ip.pop()), &v)

		case STRINGVAR:
			xcl := ip.xc
			ycl := ip.yc

			// the whole remaining line becomes the string value
			ir := ip.getString(xcl, ycl, 1)
			if ip.er != 0 {
				return
			}

			var buf [BUFSIZE]byte
			nb := ip.stringDim(xcl, ycl) + 2
			if nb > BUFSIZE {
				nb = BUFSIZE
			}
			ip.ins(buf[:], nb, prompt())

			n := int(buf[0])
			copy(ir, buf[1:1+n])
			ip.setStringLength(xcl, ycl, n)
		}

		ip.nextToken()
		if ip.token != ',' && ip.token != ';' {
			break
		}
		ip.nextToken()
	}

	if oldid != -1 {
		ip.id = oldid
	}
}

/*

	goto, gosub, return and their stack helpers

*/

func (ip *interp) pushGosubStack() {

	if ip.gosubsp < GOSUBDEPTH {
		ip.gosubstack[ip.gosubsp] = ip.here
		ip.gosubsp++
	} else {
		ip.errorCode(EGOSUB)
	}
}

func (ip *interp) popGosubStack() {

	if ip.gosubsp == 0 {
		ip.errorCode(ERETURN)
		return
	}

	ip.gosubsp--
	ip.here = ip.gosubstack[ip.gosubsp]
}

func (ip *interp) clrGosubStack() {

	ip.gosubsp = 0
}

func (ip *interp) executeGoto() {

	t := ip.token

	ip.nextToken()
	ip.expression()
	if ip.er != 0 {
		return
	}

	if t == TGOSUB {
		ip.pushGosubStack()
		if ip.er != 0 {
			return
		}
	}

	ip.findLine(ip.pop())
	if ip.er != 0 {
		return
	}

	if ip.st == SINT {
		ip.st = SRUN
	}

	ip.nextToken()
}

func (ip *interp) executeReturn() {

	ip.popGosubStack()
	if ip.er != 0 {
		return
	}

	ip.nextToken()
}

/*

	if and then

*/

func (ip *interp) executeIf() {

	ip.nextToken()
	ip.expression()
	if ip.er != 0 {
		return
	}

	x := ip.pop()

	// on condition false skip the entire line
	if x == 0 {
		for ip.token != LINENUMBER && ip.token != EOL && ip.here <= ip.top {
			ip.nextToken()
		}
	}

	if ip.token == TTHEN {
		ip.nextToken()
		// a bare number after THEN is an implicit GOTO
		if ip.token == NUMBER {
			ip.findLine(ip.x)
			if ip.er != 0 {
				return
			}
		}
	}
}

/*

	for, next and the apocryphal break

*/

func (ip *interp) pushForStack(varx, vary byte, here int, to, step number) {

	if ip.forsp < FORDEPTH {
		ip.forstack[ip.forsp] = forFrame{varx, vary, here, to, step}
		ip.forsp++
	} else {
		ip.errorCode(EFOR)
	}
}

//
// pop restores the loop variable names and the return address into
// the registers and passes the limit and step back
//

func (ip *interp) popForStack() (number, number) {

	if ip.forsp == 0 {
		ip.errorCode(EFOR)
		return 0, 0
	}

	ip.forsp--
	f := &ip.forstack[ip.forsp]
	ip.xc = f.varx
	ip.yc = f.vary
	ip.here = f.here

	return f.to, f.step
}

func (ip *interp) dropForStack() {

	if ip.forsp == 0 {
		ip.errorCode(EFOR)
		return
	}

	ip.forsp--
}

func (ip *interp) clrForStack() {

	ip.forsp = 0
	ip.fnc = 0
}

//
// find the matching NEXT token, respecting nested loops, or the end
// of the program
//

func (ip *interp) findNext() {

	for {
		if ip.token == TNEXT {
			if ip.fnc == 0 {
				return
			}
			ip.fnc--
		}
		if ip.token == TFOR {
			ip.fnc++
		}

		if ip.st == SINT && ip.token == EOL {
			ip.errorCode(EFOR)
			return
		}
		if ip.st != SINT && ip.here >= ip.top {
			ip.errorCode(EFOR)
			return
		}

		ip.nextToken()
	}
}

/*

	for variable = expression to expression [step expression]

	for stores the variable, the limit and the step on the for
	stack.  Changing limit or step during the execution of a loop
	has no effect.

*/

func (ip *interp) executeFor() {

	ip.nextToken()
	if ip.token != VARIABLE {
		ip.errorCode(EUNKNOWN)
		return
	}
	xcl := ip.xc
	ycl := ip.yc

	ip.nextToken()
	if ip.token != '=' {
		ip.errorCode(EUNKNOWN)
		return
	}

	ip.nextToken()
	ip.expression()
	if ip.er != 0 {
		return
	}

	ip.setVar(xcl, ycl, ip.pop())

	if ip.token != TTO {
		ip.errorCode(EUNKNOWN)
		return
	}
	ip.nextToken()
	ip.expression()
	if ip.er != 0 {
		return
	}

	var step number
	if ip.token == TSTEP {
		ip.nextToken()
		ip.expression()
		if ip.er != 0 {
			return
		}
		step = ip.pop()
	} else {
		step = 1
	}

	if !ip.termSymbol() {
		ip.errorCode(EUNKNOWN)
		return
	}

	to := ip.pop()

	//
	// the resume address: the interactive cursor in immediate mode,
	// the program cursor in run mode
	//

	if ip.st == SINT {
		ip.here = ip.bi
	}

	ip.xc = xcl
	ip.yc = ycl
	ip.pushForStack(xcl, ycl, ip.here, to, step)
	if ip.er != 0 {
		return
	}

	//
	// test the condition and skip the body if it is fulfilled
	// already from the start.  An apocryphal feature: STEP 0 is
	// legal and triggers an infinite loop
	//

	if (step > 0 && ip.getVar(xcl, ycl) > to) ||
		(step < 0 && ip.getVar(xcl, ycl) < to) {
		ip.dropForStack()
		ip.skipNext()
	}
}

//
// consume a skipped NEXT statement including its optional loop
// variable
//

func (ip *interp) skipNext() {

	ip.findNext()
	if ip.er != 0 {
		return
	}

	ip.nextToken()
	if ip.token == VARIABLE {
		ip.nextToken()
	}
}

//
// an apocryphal feature is the BREAK command ending a loop; it
// drops exactly one level, so breaking an outer loop from inside an
// inner one is not supported
//

func (ip *interp) executeBreak() {

	ip.dropForStack()
	ip.skipNext()
}

func (ip *interp) executeNext() {

	var xcl, ycl byte

	ip.nextToken()
	if !ip.termSymbol() {
		if ip.token != VARIABLE {
			ip.errorCode(EUNKNOWN)
			return
		}
		xcl = ip.xc
		ycl = ip.yc
		ip.nextToken()
		if !ip.termSymbol() {
			ip.errorCode(EUNKNOWN)
			return
		}
	}

	h := ip.here
	to, step := ip.popForStack()
	if ip.er != 0 {
		return
	}

	// a named NEXT must match the loop on the stack top
	if xcl != 0 {
		if xcl != ip.xc || ycl != ip.yc {
			ip.errorCode(ENEXT)
			return
		}
	}

	loop := step == 0
	if !loop {
		t := ip.getVar(ip.xc, ip.yc) + step
		ip.setVar(ip.xc, ip.yc, t)
		if step > 0 && t <= to {
			loop = true
		}
		if step < 0 && t >= to {
			loop = true
		}
	}

	if !loop {
		// last iteration completed
		ip.here = h
		ip.nextToken()
		return
	}

	// next iteration
	ip.pushForStack(ip.xc, ip.yc, ip.here, to, step)
	if ip.st == SINT {
		ip.bi = ip.here
	}
	ip.nextToken()
}

/*

	list [b [, e]]

*/

func (ip *interp) executeList() {

	var b, e number

	ip.nextToken()
	args := ip.parseArguments()
	if ip.er != 0 {
		return
	}

	switch args {
	case 0:
		b = 0
		e = 32767
	case 1:
		b = ip.pop()
		e = b
	case 2:
		e = ip.pop()
		b = ip.pop()
	default:
		ip.errorCode(EARGS)
		return
	}

	if ip.top == 0 {
		ip.nextToken()
		return
	}

	oflag := false

	ip.here = 0
	ip.getToken()
	for ip.here < ip.top {
		if ip.token == LINENUMBER && ip.x >= b {
			oflag = true
		}
		if ip.token == LINENUMBER && ip.x > e {
			oflag = false
		}
		if oflag {
			ip.outputToken()
		}
		ip.getToken()
		if ip.token == LINENUMBER && oflag {
			ip.outcr()
			// wait after every line on small displays
			if ip.dsp.active(ip.od) {
				if ip.waitOnScroll() == 27 {
					break
				}
			}
		}
	}
	if ip.here == ip.top && oflag {
		ip.outputToken()
	}
	if e == 32767 || b != e {
		// suppress the newline in "list 50" - a little hack
		ip.outcr()
	}

	ip.nextToken()
}

/*

	run [line] and cont

*/

func (ip *interp) executeRun() {

	if ip.token == TCONT {
		ip.st = SRUN
		ip.nextToken()
	} else {
		ip.nextToken()
		args := ip.parseArguments()
		if ip.er != 0 {
			return
		}
		if args > 1 {
			ip.errorCode(EARGS)
			return
		}
		if args == 0 {
			ip.here = 0
		} else {
			ip.findLine(ip.pop())
		}
		if ip.er != 0 {
			return
		}
		if ip.st == SINT {
			ip.st = SRUN
		}

		ip.executeClr()
	}

	ip.initClock()
	ip.running = true

	for ip.here < ip.top && (ip.st == SRUN || ip.st == SERUN) && ip.er == 0 {
		ip.statement()
	}

	ip.running = false
	ip.st = SINT

	if ip.printStats {
		ip.printStatistics()
	}
}

// the general cleanup function
func (ip *interp) executeNew() {

	ip.clearStack()
	ip.clrVars()
	ip.top = 0
	ip.zeroBlock(ip.top, ip.himem)
	ip.resetError()
	ip.st = SINT

	ip.clrGosubStack()
	ip.clrForStack()
}

func (ip *interp) executeRem() {

	for ip.token != LINENUMBER && ip.token != EOL && ip.here <= ip.top {
		ip.nextToken()
	}
}

/*

	the Apple 1 additions: clr, dim, poke and tab

*/

func (ip *interp) executeClr() {

	ip.clrVars()
	ip.clrGosubStack()
	ip.clrForStack()
	ip.nextToken()
}

func (ip *interp) executeDim() {

	ip.nextToken()

	for {
		if ip.token != ARRAYVAR && ip.token != STRINGVAR {
			ip.errorCode(EUNKNOWN)
			return
		}

		t := ip.token
		xcl := ip.xc
		ycl := ip.yc

		ip.nextToken()

		args := ip.parseSubscripts()
		if ip.er != 0 {
			return
		}
		if args != 1 {
			ip.errorCode(EARGS)
			return
		}
		x := ip.pop()
		if x <= 0 {
			ip.errorCode(ERANGE)
			return
		}

		if t == STRINGVAR {
			ip.createString(xcl, ycl, int(x))
		} else {
			ip.createArray(xcl, ycl, int(x))
		}
		if ip.er != 0 {
			return
		}

		ip.nextToken()
		if ip.token != ',' {
			break
		}
		ip.nextToken()
	}

	ip.nextToken()
}

//
// low level poke into the byte store; negative addresses reach the
// EEPROM image, like peek
//

func (ip *interp) executePoke() {

	var amax number

	if number(ip.memsize) > maxnum {
		amax = maxnum
	} else {
		amax = number(ip.memsize)
	}

	ip.nextToken()
	ip.parseNArguments(2)
	if ip.er != 0 {
		return
	}

	v := ip.pop()
	a := ip.pop()

	if a >= 0 && a < amax {
		ip.write8(int(a), int8(v))
	} else if a < 0 && -a <= number(ip.files.elength()) {
		ip.files.eupdate(int(-a-1), int8(v))
	} else {
		ip.errorCode(ERANGE)
	}
}

// the TAB spaces command of Apple 1 BASIC
func (ip *interp) executeTab() {

	ip.nextToken()
	ip.parseNArguments(1)
	if ip.er != 0 {
		return
	}

	for x := ip.pop(); x > 0; x-- {
		ip.outspc()
	}
}

/*

	dump [b [, n]] - print the byte store from address b; n is a
	byte count, printed as n/8+1 rows of eight bytes, and defaults to
	the memory size

*/

func (ip *interp) executeDump() {

	ip.nextToken()
	args := ip.parseArguments()
	if ip.er != 0 {
		return
	}

	var b number
	a := number(ip.memsize)

	switch args {
	case 0:
		b = 0
	case 1:
		b = ip.pop()
	case 2:
		a = ip.pop()
		b = ip.pop()
	default:
		ip.errorCode(EARGS)
		return
	}

	ip.form = 6
	ip.dumpMem(int(a)/8+1, int(b))
	ip.form = 0

	ip.nextToken()
}

func (ip *interp) dumpMem(r, b int) {

	k := b

	for i := r; i > 0; i-- {
		ip.outnumber(number(k))
		ip.outspc()
		for j := 0; j < 8; j++ {
			ip.outnumber(number(ip.read8(k)))
			k++
			ip.outspc()
			if k > ip.memsize {
				break
			}
		}
		ip.outcr()
		if k > ip.memsize {
			break
		}
	}

	ip.outsc("top: ")
	ip.outnumber(number(ip.top))
	ip.outcr()
	ip.outsc("himem: ")
	ip.outnumber(number(ip.himem))
	ip.outcr()
}

/*

	get and put - single character I/O

*/

func (ip *interp) executeGet() {

	oid := ip.id

	ip.nextToken()

	// modifiers of the get statement
	if ip.token == '&' {
		ip.nextToken()
		ip.expression()
		if ip.er != 0 {
			return
		}
		ip.id = int(ip.pop())
		if ip.token != ',' {
			ip.errorCode(EUNKNOWN)
			return
		}
		ip.nextToken()
	}

	t := ip.token
	xcl := ip.xc
	ycl := ip.yc
	ps := true
	i := 1

	ip.lefthandSide(&i, &ps)
	if ip.er != 0 {
		return
	}

	if ip.checkch() != 0 {
		ip.push(number(ip.inch()))
	} else {
		ip.push(0)
	}

	ip.assignNumber(t, xcl, ycl, i, ps)

	ip.nextToken()

	ip.id = oid
}

func (ip *interp) executePut() {

	var buf [SBUFSIZE]byte

	ood := ip.od

	ip.nextToken()

	// modifiers of the put statement
	if ip.token == '&' {
		ip.nextToken()
		ip.expression()
		if ip.er != 0 {
			return
		}
		ip.od = int(ip.pop())
		if ip.token != ',' {
			ip.errorCode(EUNKNOWN)
			return
		}
		ip.nextToken()
	}

	args := ip.parseArguments()
	if ip.er != 0 {
		return
	}

	for i := args - 1; i >= 0; i-- {
		buf[i] = byte(ip.pop())
	}
	for i := 0; i < args; i++ {
		ip.outch(buf[i])
	}

	ip.od = ood
}

/*

	set is a low level control command setting interpreter
	properties:

	1	EEPROM autorun flag: 255 clear, 0 program stored, 1 autorun
	2,3	output device, current and default
	4,5	input device, current and default
	6	run statistics switch

*/

func (ip *interp) executeSet() {

	ip.nextToken()
	ip.parseNArguments(2)
	if ip.er != 0 {
		return
	}

	arg := ip.pop()
	fn := ip.pop()

	switch fn {
	case 1:
		ip.files.eupdate(0, int8(arg))
		ip.files.eflush()

	case 2:
		switch arg {
		case 0:
			ip.od = OSERIAL
		case 1:
			ip.od = ODSP
		}

	case 3:
		switch arg {
		case 0:
			ip.odd = OSERIAL
		case 1:
			ip.odd = ODSP
		}
		ip.od = ip.odd

	case 4:
		switch arg {
		case 0:
			ip.id = ISERIAL
		case 1:
			ip.id = IKEYBOARD
		}

	case 5:
		switch arg {
		case 0:
			ip.idd = ISERIAL
		case 1:
			ip.idd = IKEYBOARD
		}
		ip.id = ip.idd

	case 6:
		ip.printStats = arg != 0
	}
}

/*

	low level access to interpreter internals.  For each group of
	values there is a call vector and an argument

*/

func (ip *interp) funcUsr() {

	arg := ip.pop()
	fn := ip.pop()

	switch fn {
	case 0: // USR(0, y) delivers the internal constants
		switch arg {
		case 0:
			ip.push(numsize)
		case 1:
			ip.push(maxnum)
		case 2:
			ip.push(addrsize)
		case 3:
			ip.push(maxaddr)
		case 4:
			ip.push(strindexsize)
		case 5:
			ip.push(number(ip.memsize + 1))
		case 6:
			ip.push(number(ip.files.elength()))
		case 7:
			ip.push(GOSUBDEPTH)
		case 8:
			ip.push(FORDEPTH)
		case 9:
			ip.push(STACKSIZE)
		case 10:
			ip.push(BUFSIZE)
		case 11:
			ip.push(SBUFSIZE)
		case 14:
			ip.push(number(ip.dsp.rows))
		case 15:
			ip.push(number(ip.dsp.columns))
		default:
			ip.push(0)
		}

	case 1: // access to the registers of the interpreter
		switch arg {
		case 0:
			ip.push(number(ip.top))
		case 1:
			ip.push(number(ip.here))
		case 2:
			ip.push(number(ip.himem))
		case 3:
			ip.push(number(ip.nvars))
		case 7:
			ip.push(number(ip.gosubsp))
		case 8:
			ip.push(number(ip.fnc))
		case 9:
			ip.push(number(ip.sp))
		default:
			ip.push(0)
		}

	case 2: // io definitions, somewhat redundant to @
		switch arg {
		case 0:
			ip.push(number(ip.id))
		case 1:
			ip.push(number(ip.idd))
		case 2:
			ip.push(number(ip.od))
		case 3:
			ip.push(number(ip.odd))
		default:
			ip.push(0)
		}

	// from here on access to the heap through the input buffer
	case 3: // find an object from its type and name in ibuffer
		a, _ := ip.heapFind(int(int8(ip.ibuffer[1])), ip.ibuffer[2],
			ip.ibuffer[3])
		ip.push(number(a))

	case 4: // allocate an arbitrary object on the heap
		ip.push(number(ip.heapAlloc(int(int8(ip.ibuffer[1])),
			ip.ibuffer[2], ip.ibuffer[3], int(arg))))

	case 5: // the capacity of an object on the heap
		ip.push(number(ip.heapLength(int(int8(ip.ibuffer[1])),
			ip.ibuffer[2], ip.ibuffer[3])))

	case 6: // parse a number in the input buffer
		v, _ := parseNumber(ip.ibuffer[1:])
		ip.push(v)

	case 7: // write a number to the input buffer
		s := writeNumber(arg)
		copy(ip.ibuffer[1:], s)
		ip.ibuffer[1+len(s)] = 0
		ip.ibuffer[0] = byte(len(s))
		ip.push(number(len(s)))

	case 8: // store a line into the program from the input buffer
		ip.x = arg // the line number
		ip.push(number(ip.st))
		ip.st = SINT
		ip.push(number(ip.here))
		ip.bi = 1
		ip.ibuffer[ip.ibuffer[0]+1] = 0
		ip.storeLine()
		ip.here = int(ip.pop())
		ip.st = int(ip.pop())
		ip.push(0)

	default:
		ip.push(0)
	}
}

func (ip *interp) executeCall() {

	ip.nextToken()
}

/*

	the hardware I/O statements are environment stubs on a host
	build; they still evaluate their arguments left to right

*/

func (ip *interp) executeDwrite() {

	ip.nextToken()
	ip.parseNArguments(2)
	if ip.er != 0 {
		return
	}
	ip.pop()
	ip.pop()
}

func (ip *interp) executeAwrite() {

	ip.nextToken()
	ip.parseNArguments(2)
	if ip.er != 0 {
		return
	}
	ip.pop()
	ip.pop()
}

func (ip *interp) executePinm() {

	ip.nextToken()
	ip.parseNArguments(2)
	if ip.er != 0 {
		return
	}
	ip.pop()
	ip.pop()
}

func (ip *interp) executeDelay() {

	ip.nextToken()
	ip.parseNArguments(1)
	if ip.er != 0 {
		return
	}

	x := ip.pop()
	if x > 0 {
		time.Sleep(time.Duration(x) * time.Millisecond)
	}
}

func (ip *interp) executeTone() {

	ip.nextToken()
	args := ip.parseArguments()
	if ip.er != 0 {
		return
	}
	if args > 3 || args < 2 {
		ip.errorCode(EARGS)
		return
	}

	ip.clearStack()
}
