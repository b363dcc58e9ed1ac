package main

//
// HELP prints the keyword table grouped by language set; an
// interpreter command, not part of the dialect
//

func (ip *interp) executeHelp() {

	groups := []struct {
		title string
		first int
		last  int
	}{
		{"Palo Alto BASIC:", TPRINT, TREM},
		{"Apple 1 additions:", TNOT, TPOKE},
		{"Extensions:", TCONT, TCLS},
		{"Hardware I/O:", TPINM, TAZERO},
		{"File DOS:", TCATALOG, TCLOSE},
		{"Low level:", TUSR, TCALL},
	}

	for _, grp := range groups {
		ip.outsc(grp.title)
		ip.outcr()
		col := 0
		for t := grp.first; t <= grp.last; t++ {
			ip.outscf(ip.getKeyword(t), 8)
			col++
			if col == 8 {
				ip.outcr()
				col = 0
			}
		}
		if col != 0 {
			ip.outcr()
		}
	}

	ip.nextToken()
}
