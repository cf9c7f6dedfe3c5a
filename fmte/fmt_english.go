// Package fmte prints user-facing output in English, goroutine-safe and with verbose and quiet modes
package fmte

import (
	"io"
	"os"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var p *message.Printer

var mx sync.Mutex // Shared mutex across stdout and stderr to ensure ordering across

var normalPrint = true

var verbosePrint = false

var out io.Writer = os.Stdout

var errOut io.Writer = os.Stderr

func init() {
	p = message.NewPrinter(language.English)
}

// Off function turns off print functions within fmte package (errors are still printed)
func Off() {
	mx.Lock()
	normalPrint = false
	mx.Unlock()
}

// VerboseOn turns on verbose print functions within fmte package
func VerboseOn() {
	mx.Lock()
	verbosePrint = true
	mx.Unlock()
}

// IsVerbose tells whether verbose printing is on
func IsVerbose() bool {
	mx.Lock()
	defer mx.Unlock()
	return normalPrint && verbosePrint
}

// SetOutput redirects normal and error output; it returns a function restoring the previous writers
func SetOutput(stdout, stderr io.Writer) (restore func()) {
	mx.Lock()
	prevOut, prevErr := out, errOut
	out, errOut = stdout, stderr
	mx.Unlock()
	return func() {
		mx.Lock()
		out, errOut = prevOut, prevErr
		mx.Unlock()
	}
}

// Printf is goroutine-safe fmt.Printf for English
func Printf(format string, a ...any) {
	mx.Lock()
	defer mx.Unlock()
	if normalPrint {
		_, _ = p.Fprintf(out, format, a...)
	}
}

// PrintfV is goroutine-safe fmt.Printf for English (Verbose mode)
func PrintfV(format string, a ...any) {
	mx.Lock()
	defer mx.Unlock()
	if normalPrint && verbosePrint {
		_, _ = p.Fprintf(out, format, a...)
	}
}

// Print is a goroutine-safe fmt.Print for English
func Print(a ...any) {
	mx.Lock()
	defer mx.Unlock()
	if normalPrint {
		_, _ = p.Fprint(out, a...)
	}
}

// PrintfErr is goroutine-safe fmt.Printf to StdErr for English
func PrintfErr(format string, a ...any) {
	mx.Lock()
	_, _ = p.Fprintf(errOut, format, a...)
	mx.Unlock()
}

// Writer returns the current normal output, for callers rendering through other libraries
func Writer() io.Writer {
	mx.Lock()
	defer mx.Unlock()
	if !normalPrint {
		return io.Discard
	}
	return out
}
