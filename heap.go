package main

/*

	Variable and memory handling - the interface between the byte
	store and variable storage.

	The 26 single-letter scalars live in a static array.  Everything
	else - two character names, arrays and strings - is allocated on
	the heap, which grows downward from the end of the byte store.
	A heap object is a 3 byte header (name1, name2, type written in
	decreasing addresses), for arrays and strings a 2 byte capacity,
	then the payload.  Objects are never freed individually; CLR and
	NEW release the whole heap.

	Heap objects are slices into the shared buffer, never independent
	records: a handle is (type, name, address).

*/

//
// Allocate a chunk of memory for an object on the heap.  Every
// object is identified by its name pair (c, d) and its type t
//

func (ip *interp) heapAlloc(t int, c, d byte, l int) int {

	var vsize int

	// refuse if the object already exists
	if b, _ := ip.heapFind(t, c, d); b != 0 {
		ip.errorCode(EVARIABLE)
		return 0
	}

	//
	// how much space is needed:
	//	3 bytes for the type and the 2 name characters
	//	numsize for every number
	//	addrsize for the capacity field of arrays and strings
	//	one byte for every string character
	//

	switch t {
	case VARIABLE:
		vsize = numsize + 3
	case ARRAYVAR:
		vsize = numsize*l + addrsize + 3
	default:
		vsize = l + addrsize + 3
	}

	if ip.himem-ip.top < vsize {
		ip.errorCode(EOUTOFMEMORY)
		return 0
	}

	// write the header
	b := ip.himem
	ip.mem[b] = c
	b--
	ip.mem[b] = d
	b--
	ip.mem[b] = byte(int8(t))
	b--

	// for strings and arrays write the maximum length
	if t == ARRAYVAR || t == STRINGVAR {
		b = b - addrsize + 1
		ip.writeAddr(b, vsize-(addrsize+3))
	}

	// reserve space for the payload
	ip.himem -= vsize
	ip.nvars++

	return ip.himem + 1
}

//
// heapFind passes back the payload location of the object and its
// capacity in bytes.  A linear scan from the end of memory consumes
// exactly one object per step for nvars steps
//

func (ip *interp) heapFind(t int, c, d byte) (int, int) {

	var sz int

	b := ip.memsize

	for i := 0; i < ip.nvars; i++ {
		c1 := ip.mem[b]
		b--
		d1 := ip.mem[b]
		b--
		t1 := int(int8(ip.mem[b]))
		b--

		if t1 == VARIABLE {
			sz = numsize
		} else {
			b = b - addrsize + 1
			sz = ip.readAddr(b)
			b--
		}

		b -= sz

		if c1 == c && d1 == d && t1 == t {
			return b + 1, sz
		}
	}

	return 0, 0
}

// the capacity of an object in payload bytes
func (ip *interp) heapLength(t int, c, d byte) int {

	_, sz := ip.heapFind(t, c, d)

	return sz
}

//
// Get and create a scalar variable.  Single letter names go to the
// static array, @ names to the pseudo variables, anything else to
// the heap
//

func (ip *interp) getVar(c, d byte) number {

	if c >= 'A' && c <= 'Z' && d == 0 {
		return ip.vars[c-'A']
	}

	if c == '@' {
		switch d {
		case 'S':
			return ip.ert
		case 'I':
			return number(ip.id)
		case 'O':
			return number(ip.od)
		case 'C':
			if ip.checkch() != 0 {
				return number(ip.inch())
			}
			return 0
		case 'R':
			return number(ip.rd)
		case 'X':
			return number(ip.dsp.mycol)
		case 'Y':
			return number(ip.dsp.myrow)
		}
	}

	// dynamically allocated variables
	a, _ := ip.heapFind(VARIABLE, c, d)
	if a == 0 {
		a = ip.heapAlloc(VARIABLE, c, d, 0)
		if ip.er != 0 {
			return 0
		}
	}

	return ip.readNum(a)
}

// set and create a scalar variable
func (ip *interp) setVar(c, d byte, v number) {

	if c >= 'A' && c <= 'Z' && d == 0 {
		ip.vars[c-'A'] = v
		return
	}

	if c == '@' {
		switch d {
		case 'S':
			ip.ert = v
			return
		case 'I':
			ip.id = int(v)
			return
		case 'O':
			ip.od = int(v)
			return
		case 'C':
			ip.outch(byte(v))
			return
		case 'R':
			ip.rd = uint32(v) & 0xffff
			return
		case 'X':
			ip.dsp.mycol = int(v) % ip.dsp.columns
			return
		case 'Y':
			ip.dsp.myrow = int(v) % ip.dsp.rows
			return
		}
	}

	a, _ := ip.heapFind(VARIABLE, c, d)
	if a == 0 {
		a = ip.heapAlloc(VARIABLE, c, d, 0)
		if ip.er != 0 {
			return
		}
	}

	ip.writeNum(a, v)
}

// clr all variables
func (ip *interp) clrVars() {

	for i := range ip.vars {
		ip.vars[i] = 0
	}

	ip.nvars = 0
	ip.himem = ip.memsize
}

func (ip *interp) createArray(c, d byte, i int) {

	if a, _ := ip.heapFind(ARRAYVAR, c, d); a != 0 {
		ip.errorCode(EVARIABLE)
		return
	}

	ip.heapAlloc(ARRAYVAR, c, d, i)
}

//
// Generic array access.  m is 'g' for get and 's' for set.  The @
// names address the EEPROM payload (@E), the display buffer (@D)
// and Dr. Wang's end of memory array (@ with no second letter);
// array indices are 1 based
//

func (ip *interp) array(m byte, c, d byte, i int, v *number) {

	var a, h int
	var eeprom bool

	if c == '@' {
		switch d {
		case 'E':
			h = ip.files.elength() / numsize
			a = ip.files.elength() - numsize*i
			eeprom = true

		case 'D':
			if ip.dsp.rows == 0 || ip.dsp.columns == 0 {
				return
			}
			if i < 1 || i > ip.dsp.columns*ip.dsp.rows {
				return
			}
			col := (i - 1) % ip.dsp.columns
			row := (i - 1) / ip.dsp.columns
			if m == 's' {
				ip.dsp.set(col, row, byte(*v))
			} else {
				*v = number(ip.dsp.get(col, row))
			}
			return

		default:
			h = (ip.himem - ip.top) / numsize
			a = ip.himem - numsize*i + 1
		}
	} else {
		var sz int
		a, sz = ip.heapFind(ARRAYVAR, c, d)
		if a == 0 {
			ip.errorCode(EVARIABLE)
			return
		}
		h = sz / numsize
		a = a + (i-1)*numsize
	}

	// is the index in range
	if i < 1 || i > h {
		ip.errorCode(ERANGE)
		return
	}

	if m == 'g' {
		if !eeprom {
			*v = ip.readNum(a)
		} else {
			*v = ip.files.ereadNum(a)
		}
	} else if m == 's' {
		if !eeprom {
			ip.writeNum(a, *v)
		} else {
			ip.files.ewriteNum(a, *v)
		}
	}
}

func (ip *interp) createString(c, d byte, i int) {

	if a, _ := ip.heapFind(STRINGVAR, c, d); a != 0 {
		ip.errorCode(EVARIABLE)
		return
	}

	a := ip.heapAlloc(STRINGVAR, c, d, i+strindexsize)
	if a != 0 {
		// a fresh string is empty
		ip.writeAddr(a, 0)
	}
}

//
// The payload of a string starting at the 1 based index b, extending
// to the string's capacity.  @ with no letter is the input buffer
//

func (ip *interp) getString(c, d byte, b int) []byte {

	if c == '@' {
		return ip.ibuffer[b:]
	}

	a, sz := ip.heapFind(STRINGVAR, c, d)
	if a == 0 {
		// strings spring into being with the default capacity
		ip.createString(c, d, defaultStringDim)
		if ip.er != 0 {
			return nil
		}
		a, sz = ip.heapFind(STRINGVAR, c, d)
	}

	if b < 1 || b > sz-strindexsize {
		ip.errorCode(ERANGE)
		return nil
	}

	return ip.mem[a+b-1+strindexsize : a+sz]
}

// the declared capacity of a string in characters
func (ip *interp) stringDim(c, d byte) int {

	if c == '@' {
		return BUFSIZE - 1
	}

	return ip.heapLength(STRINGVAR, c, d) - strindexsize
}

// the current logical length of a string
func (ip *interp) lenString(c, d byte) int {

	if c == '@' {
		return int(ip.ibuffer[0])
	}

	a, _ := ip.heapFind(STRINGVAR, c, d)
	if a == 0 {
		return 0
	}

	return ip.readAddr(a)
}

func (ip *interp) setStringLength(c, d byte, l int) {

	if c == '@' {
		ip.ibuffer[0] = byte(l)
		return
	}

	a, sz := ip.heapFind(STRINGVAR, c, d)
	if a == 0 {
		ip.errorCode(EVARIABLE)
		return
	}

	if l < sz {
		ip.writeAddr(a, l)
	} else {
		ip.errorCode(ERANGE)
	}
}

//
// Copy s into the string (c, d) starting at the 1 based position w,
// updating the length word
//

func (ip *interp) setString(c, d byte, w int, s []byte, n int) {

	var b []byte
	var a int

	if c == '@' {
		b = ip.ibuffer[:]
	} else {
		var sz int
		a, sz = ip.heapFind(STRINGVAR, c, d)
		if a == 0 {
			ip.errorCode(EVARIABLE)
			return
		}
		b = ip.mem[a+strindexsize : a+sz]
	}

	if w+n-1 <= ip.stringDim(c, d) {
		if c == '@' {
			copy(b[w:], s[:n])
			ip.ibuffer[0] = byte(w + n - 1)
		} else {
			copy(b[w-1:], s[:n])
			ip.writeAddr(a, w+n-1)
		}
	} else {
		ip.errorCode(ERANGE)
	}
}
