// Package ui renders pipeline results for the terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Color definitions for consistent UI
var (
	grayColor  = color.New(color.FgWhite, color.Faint)
	errorColor = color.New(color.FgRed)
	warnColor  = color.New(color.FgYellow)

	addColor    = color.New(color.FgGreen)
	removeColor = color.New(color.FgRed)
	modifyColor = color.New(color.FgYellow)

	riskLowColor      = color.New(color.FgGreen)
	riskMediumColor   = color.New(color.FgYellow)
	riskHighColor     = color.New(color.FgRed)
	riskCriticalColor = color.New(color.FgRed, color.Bold)

	headingColor = color.New(color.FgCyan, color.Bold)
)

// Writer provides formatted output with consistent prefixes and optional colors.
type Writer struct {
	quiet  bool
	stdout io.Writer
	stderr io.Writer
}

// NewWriter creates a Writer bound to the process streams.
func NewWriter() *Writer {
	return &Writer{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetQuiet suppresses everything except errors.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Info prints an info message with [info] prefix in gray.
func (w *Writer) Info(msg string) {
	if w.quiet {
		return
	}
	grayColor.Fprintf(w.stdout, "[info] %s\n", msg)
}

// Warn prints a warning message with [warn] prefix in yellow.
func (w *Writer) Warn(msg string) {
	if w.quiet {
		return
	}
	warnColor.Fprintf(w.stderr, "[warn] %s\n", msg)
}

// Error prints an error message with [error] prefix in red.
func (w *Writer) Error(msg string) {
	errorColor.Fprintf(w.stderr, "[error] %s\n", msg)
}

// Println prints a plain line to stdout.
func (w *Writer) Println(msg string) {
	if w.quiet {
		return
	}
	fmt.Fprintln(w.stdout, msg)
}
