package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tklauser/go-sysconf"
)

//
// Called by crash so the terminal is back in cooked mode before the
// process exits
//

var cleanupHook func()

//
// Print a fatal message and abort the process.  Writes to standard
// error, since the user may have redirected standard output
//

func crash(msg string) {

	if cleanupHook != nil {
		cleanupHook()
	}

	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}

	os.Exit(1)
}

//
// A handy 'assert' function for conditions that mean an interpreter
// bug rather than a user error
//

func basicAssert(chk bool, msg string) {

	if !chk {
		crash(msg)
	}
}

//
// Guess the possible basic memory size.  On a host the first model
// always allocates, but keeping the table documents the targets the
// dialect comes from
//

func allocmem() []byte {

	memmodel := []int{60000, 46000, 28000, 4096, 1024, 512, 128}

	return make([]byte, memmodel[0])
}

func elapsedMillis(start time.Time) int64 {

	return time.Since(start).Milliseconds()
}

func pluralize(str string, num int64) string {

	// oddity: 0 is considered plural
	if num != 1 {
		str += "s"
	}

	return str
}

//
// Run statistics.  CPU times come from /proc scaled by the clock
// tick; unavailable values degrade to zero so statistics never
// break a run
//

func (ip *interp) initClock() {

	ip.elapsed = time.Now()
	ip.utime, ip.stime = getCPUInfo()
	ip.numStatements = 0
}

func (ip *interp) printStatistics() {

	elapsed := time.Since(ip.elapsed)
	utime, stime := getCPUInfo()

	ip.outsc(fmt.Sprintf("CPU usage: elapsed = %s / user = %s / system = %s\n",
		formatCPUTime(int64(elapsed.Seconds())),
		formatCPUTime(utime-ip.utime), formatCPUTime(stime-ip.stime)))

	ip.outsc(fmt.Sprintf("%d %s executed\n", ip.numStatements,
		pluralize("statement", ip.numStatements)))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

func getCPUInfo() (int64, int64) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || clktck == 0 {
		return 0, 0
	}

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0
	}

	fields := strings.Fields(string(contents))
	if len(fields) < 15 {
		return 0, 0
	}

	utime, err := strconv.ParseInt(fields[13], 10, 64)
	if err != nil {
		return 0, 0
	}

	stime, err := strconv.ParseInt(fields[14], 10, 64)
	if err != nil {
		return 0, 0
	}

	return utime / clktck, stime / clktck
}
