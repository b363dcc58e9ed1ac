package main

import (
	"strings"
	"testing"
)

func TestForLoopScenario(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 FOR I=1 TO 3",
		"20 PRINT I",
		"30 NEXT I",
		"RUN",
	)

	if got := tc.out.String(); got != "1\n2\n3\n" {
		t.Fatalf("output %q, want 1 2 3 on own lines", got)
	}
}

func TestIfThenScenario(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 LET A=5",
		"20 IF A>3 THEN PRINT \"Y\"",
		"30 IF A<3 THEN PRINT \"N\"",
		"RUN",
	)

	if got := tc.out.String(); got != "Y\n" {
		t.Fatalf("output %q, want Y only", got)
	}
}

func TestGosubScenario(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 GOSUB 100",
		"20 PRINT \"BACK\"",
		"30 END",
		"100 PRINT \"SUB\"",
		"110 RETURN",
		"RUN",
	)

	if got := tc.out.String(); got != "SUB\nBACK\n" {
		t.Fatalf("output %q", got)
	}
}

func TestArrayScenario(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 DIM A(5)",
		"20 FOR I=1 TO 5: A(I)=I*I: NEXT I",
		"30 FOR I=1 TO 5: PRINT A(I);: NEXT I",
		"RUN",
	)

	if got := tc.out.String(); got != "1 4 9 16 25 " {
		t.Fatalf("output %q", got)
	}
}

func TestStringScenario(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 A$=\"WORLD\"",
		"20 PRINT \"HELLO \";A$",
		"RUN",
	)

	if got := tc.out.String(); got != "HELLO WORLD\n" {
		t.Fatalf("output %q", got)
	}
}

func TestInputScenario(t *testing.T) {

	ip, tc := newTestInterp(t)

	tc.input = []string{"21"}

	doProgram(ip,
		"10 INPUT A : PRINT A*2",
		"RUN",
	)

	if got := tc.out.String(); got != "42\n" {
		t.Fatalf("output %q", got)
	}
}

func TestInputString(t *testing.T) {

	ip, tc := newTestInterp(t)

	tc.input = []string{"HI THERE"}

	doProgram(ip,
		"10 INPUT A$",
		"20 PRINT A$",
		"RUN",
	)

	if got := tc.out.String(); got != "HI THERE\n" {
		t.Fatalf("output %q", got)
	}
}

func TestInputBreakChar(t *testing.T) {

	ip, tc := newTestInterp(t)

	tc.input = []string{"#"}

	doProgram(ip,
		"10 INPUT A",
		"20 PRINT \"AFTER\"",
		"RUN",
	)

	if strings.Contains(tc.out.String(), "AFTER") {
		t.Fatalf("break did not stop the run: %q", tc.out.String())
	}
	if ip.st != SINT {
		t.Fatalf("st = %d, want SINT", ip.st)
	}
}

//
// substring assignment extends the target but does not truncate it
//

func TestStringSubstringAssignment(t *testing.T) {

	ip, tc := newTestInterp(t)

	doLine(ip, "A$=\"HELLO\" : A$(3)=\"XY\" : PRINT A$")

	if got := tc.out.String(); got != "HEXYO\n" {
		t.Fatalf("output %q, want HEXYO", got)
	}
}

func TestStringSubstringRead(t *testing.T) {

	ip, tc := newTestInterp(t)

	doLine(ip, "A$=\"HELLO\" : PRINT A$(2,4)")

	if got := tc.out.String(); got != "ELL\n" {
		t.Fatalf("output %q, want ELL", got)
	}
}

func TestClrZeroesEverything(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"A=5",
		"B1=6",
		"CLR",
		"PRINT A",
		"PRINT B1",
	)

	if got := tc.out.String(); got != "0\n0\n" {
		t.Fatalf("output %q", got)
	}
}

func TestDimRangeChecks(t *testing.T) {

	ip, _ := newTestInterp(t)

	doLine(ip, "DIM A(5)")
	if ip.er != 0 {
		t.Fatalf("DIM: er = %d", ip.er)
	}

	doLine(ip, "A(6)=1")
	if ip.er != ERANGE {
		t.Fatalf("er = %d, want ERANGE", ip.er)
	}
	ip.resetError()

	// redimensioning is refused
	doLine(ip, "DIM A(5)")
	if ip.er != EVARIABLE {
		t.Fatalf("redim: er = %d, want EVARIABLE", ip.er)
	}
}

func TestReturnWithoutGosub(t *testing.T) {

	ip, tc := newTestInterp(t)

	doLine(ip, "RETURN")
	if ip.er != ERETURN {
		t.Fatalf("er = %d, want ERETURN", ip.er)
	}
	if !strings.Contains(tc.out.String(), "Return Error") {
		t.Fatalf("output %q", tc.out.String())
	}
}

func TestGosubOverflow(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 GOSUB 10",
		"RUN",
	)

	if ip.er != EGOSUB {
		t.Fatalf("er = %d, want EGOSUB", ip.er)
	}
	// the report carries the line number
	if !strings.Contains(tc.out.String(), "10: GOSUB Error") {
		t.Fatalf("output %q", tc.out.String())
	}
}

func TestForStackOverflow(t *testing.T) {

	ip, _ := newTestInterp(t)

	doProgram(ip,
		"10 FOR A=1 TO 1",
		"20 FOR B=1 TO 1",
		"30 FOR C=1 TO 1",
		"40 FOR D=1 TO 1",
		"50 FOR E=1 TO 1",
		"RUN",
	)

	if ip.er != EFOR {
		t.Fatalf("er = %d, want EFOR", ip.er)
	}
}

func TestForSkipsBodyWhenDoneFromTheStart(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 FOR I=5 TO 1",
		"20 PRINT I",
		"30 NEXT I",
		"40 PRINT \"E\"",
		"RUN",
	)

	if got := tc.out.String(); got != "E\n" {
		t.Fatalf("output %q", got)
	}
}

func TestForNegativeStep(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 FOR I=3 TO 1 STEP 0-1",
		"20 PRINT I",
		"30 NEXT I",
		"RUN",
	)

	if got := tc.out.String(); got != "3\n2\n1\n" {
		t.Fatalf("output %q", got)
	}
}

func TestNextNameMismatch(t *testing.T) {

	ip, _ := newTestInterp(t)

	doProgram(ip,
		"10 FOR I=1 TO 2",
		"20 NEXT J",
		"RUN",
	)

	if ip.er != ENEXT {
		t.Fatalf("er = %d, want ENEXT", ip.er)
	}
}

func TestBreakLeavesOneLoopLevel(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 FOR I=1 TO 10",
		"20 PRINT I",
		"30 IF I=2 THEN BREAK",
		"40 NEXT I",
		"50 PRINT \"D\"",
		"RUN",
	)

	if got := tc.out.String(); got != "1\n2\nD\n" {
		t.Fatalf("output %q", got)
	}
}

func TestNestedForLoops(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 FOR I=1 TO 2",
		"20 FOR J=1 TO 2",
		"30 PRINT I*10+J",
		"40 NEXT J",
		"50 NEXT I",
		"RUN",
	)

	if got := tc.out.String(); got != "11\n12\n21\n22\n" {
		t.Fatalf("output %q", got)
	}
}

func TestGotoUnknownLine(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 GOTO 99",
		"RUN",
	)

	if ip.er != ELINE {
		t.Fatalf("er = %d, want ELINE", ip.er)
	}
	if !strings.Contains(tc.out.String(), "Unknown Line Error") {
		t.Fatalf("output %q", tc.out.String())
	}
}

func TestIfFalseSkipsRestOfLine(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 IF 0 THEN PRINT \"A\": PRINT \"B\"",
		"20 PRINT \"C\"",
		"RUN",
	)

	if got := tc.out.String(); got != "C\n" {
		t.Fatalf("output %q", got)
	}
}

func TestImplicitGotoAfterThen(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 IF 1 THEN 40",
		"20 PRINT \"NO\"",
		"30 END",
		"40 PRINT \"YES\"",
		"RUN",
	)

	if got := tc.out.String(); got != "YES\n" {
		t.Fatalf("output %q", got)
	}
}

func TestPrintFieldWidth(t *testing.T) {

	ip, tc := newTestInterp(t)

	doLine(ip, "PRINT #6,42")

	if got := tc.out.String(); got != "42    \n" {
		t.Fatalf("output %q", got)
	}
}

func TestPrintCommaSeparator(t *testing.T) {

	ip, tc := newTestInterp(t)

	doLine(ip, "PRINT 1,2")

	if got := tc.out.String(); got != "1 2\n" {
		t.Fatalf("output %q", got)
	}
}

func TestRunFromLine(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 PRINT 1",
		"20 PRINT 2",
		"RUN 20",
	)

	if got := tc.out.String(); got != "2\n" {
		t.Fatalf("output %q", got)
	}
}

func TestEndStopsTheRun(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 PRINT 1",
		"20 END",
		"30 PRINT 2",
		"RUN",
	)

	if got := tc.out.String(); got != "1\n" {
		t.Fatalf("output %q", got)
	}
}

func TestNewClearsProgramAndState(t *testing.T) {

	ip, _ := newTestInterp(t)

	doProgram(ip,
		"10 PRINT 1",
		"A=5",
		"NEW",
	)

	if ip.top != 0 || ip.nvars != 0 || ip.himem != ip.memsize {
		t.Fatalf("top=%d nvars=%d himem=%d", ip.top, ip.nvars, ip.himem)
	}
	if ip.getVar('A', 0) != 0 {
		t.Fatal("variable survived NEW")
	}
}

func TestGetWithoutPendingCharacterGivesZero(t *testing.T) {

	ip, tc := newTestInterp(t)

	tc.input = []string{"x"}

	doLine(ip, "GET A")
	doLine(ip, "PRINT A")

	if got := tc.out.String(); got != "0\n" {
		// checkCh of the test console never reports data, so GET
		// sees no pending character
		t.Fatalf("output %q", got)
	}
}

func TestPutWritesCharacters(t *testing.T) {

	ip, tc := newTestInterp(t)

	doLine(ip, "PUT 72,73")

	if got := tc.out.String(); got != "HI" {
		t.Fatalf("output %q", got)
	}
}

func TestDumpShowsTopAndHimem(t *testing.T) {

	ip, tc := newTestInterp(t)

	doLine(ip, "DUMP 0,1")

	out := tc.out.String()
	if !strings.Contains(out, "top: ") || !strings.Contains(out, "himem: ") {
		t.Fatalf("output %q", out)
	}
}

func TestHelpListsKeywords(t *testing.T) {

	ip, tc := newTestInterp(t)

	doLine(ip, "HELP")

	out := tc.out.String()
	for _, kw := range []string{"PRINT", "GOSUB", "CATALOG", "USR"} {
		if !strings.Contains(out, kw) {
			t.Fatalf("HELP output misses %s: %q", kw, out)
		}
	}
}

func TestTrappableErrorVisibleAsAtS(t *testing.T) {

	ip, tc := newTestInterp(t)

	doLine(ip, "OPEN \"NOSUCH\"")
	if ip.er != 0 {
		t.Fatalf("OPEN must not abort: er = %d", ip.er)
	}

	doLine(ip, "PRINT @S")
	if got := tc.out.String(); got != "1\n" {
		t.Fatalf("@S = %q, want 1", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"10 FOR I=1 TO 3",
		"20 PRINT I",
		"30 NEXT I",
	)

	image := make([]byte, ip.top)
	copy(image, ip.mem[:ip.top])

	doLine(ip, "SAVE \"T\"")
	if ip.er != 0 {
		t.Fatalf("SAVE: er = %d", ip.er)
	}

	doLine(ip, "NEW")
	doLine(ip, "LOAD \"T\"")
	if ip.er != 0 {
		t.Fatalf("LOAD: er = %d", ip.er)
	}

	if ip.top != len(image) {
		t.Fatalf("top after load %d, want %d", ip.top, len(image))
	}
	for i := range image {
		if ip.mem[i] != image[i] {
			t.Fatalf("byte %d differs after roundtrip", i)
		}
	}

	tc.out.Reset()
	doLine(ip, "RUN")
	if got := tc.out.String(); got != "1\n2\n3\n" {
		t.Fatalf("output %q", got)
	}
}

func TestCatalogListsSavedFiles(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip, "10 PRINT 1")
	doLine(ip, "SAVE \"B\"")
	doLine(ip, "SAVE \"A\"")

	doLine(ip, "CATALOG")

	out := tc.out.String()
	ai := strings.Index(out, "A")
	bi := strings.Index(out, "B")
	if ai < 0 || bi < 0 || ai > bi {
		t.Fatalf("catalog not sorted: %q", out)
	}
}

func TestDeleteRemovesFile(t *testing.T) {

	ip, _ := newTestInterp(t)

	doProgram(ip, "10 PRINT 1")
	doLine(ip, "SAVE \"T\"")

	doLine(ip, "DELETE \"T\"")
	if ip.ert != 0 {
		t.Fatalf("delete: ert = %d", ip.ert)
	}

	doLine(ip, "DELETE \"T\"")
	if ip.ert != 1 {
		t.Fatalf("double delete: ert = %d, want 1", ip.ert)
	}
}

func TestEepromSaveLoadAndAutorun(t *testing.T) {

	dir := t.TempDir()
	ip, _ := newTestInterpDir(t, dir)

	doProgram(ip,
		"10 PRINT 1",
		"20 PRINT 2",
	)

	doLine(ip, "SAVE \"!\"")
	if ip.er != 0 {
		t.Fatalf("SAVE !: er = %d", ip.er)
	}

	doLine(ip, "NEW")
	doLine(ip, "LOAD \"!\"")
	if nums := lineNumbers(ip); len(nums) != 2 {
		t.Fatalf("lines after eeprom load: %v", nums)
	}

	// arm the autorun flag and boot a second interpreter on the
	// same store
	doLine(ip, "SET 1,1")

	ip2, tc2 := newTestInterpDir(t, dir)
	ip2.setup()
	if ip2.st != SERUN {
		t.Fatalf("st = %d, want SERUN", ip2.st)
	}

	ip2.loop()
	if !strings.Contains(tc2.out.String(), "1\n2\n") {
		t.Fatalf("autorun output %q", tc2.out.String())
	}
	if ip2.top != 0 {
		t.Fatalf("top = %d after autorun", ip2.top)
	}
}

func TestProgramHeapNeverOverlap(t *testing.T) {

	ip, _ := newTestInterp(t)

	doProgram(ip,
		"10 DIM A(100)",
		"20 A(100)=7",
		"30 PRINT A(100)",
		"RUN",
	)

	if ip.himem+1 < ip.top {
		t.Fatalf("regions overlap: top=%d himem=%d", ip.top, ip.himem)
	}
}

func TestStatisticsSwitch(t *testing.T) {

	ip, tc := newTestInterp(t)

	doProgram(ip,
		"SET 6,1",
		"10 PRINT 1",
		"RUN",
	)

	if !strings.Contains(tc.out.String(), "statements executed") {
		t.Fatalf("no statistics in %q", tc.out.String())
	}
}
