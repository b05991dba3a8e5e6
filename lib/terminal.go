package lib

import (
	"fmt"
	"io"
	"os"
)

const (
	ColorRed     = "\033[0;31m"
	ColorGreen   = "\033[0;32m"
	ColorYellow  = "\033[0;33m"
	ColorBlue    = "\033[0;34m"
	ColorMagenta = "\033[0;35m"
	ColorCyan    = "\033[0;36m"
	ColorClear   = "\033[0m"
)

var ERR = "× ERR:"
var INFO = ">"
var OK = "✓"
var RELOAD = "↻"
var ITEM = "-"
var ARROW = "->"

// Stdout and Stderr are where the Print helpers write, swap them to capture output.
var Stdout io.Writer = os.Stdout
var Stderr io.Writer = os.Stderr

func UseColor(use bool) {
	if use {
		ERR = Red("× ERR:")
		INFO = Yellow(">")
		OK = Green("✓")
		RELOAD = Blue("↻")
		ITEM = Magenta("-")
		ARROW = Cyan("->")
	} else {
		ERR, INFO, OK, RELOAD, ITEM, ARROW = "× ERR:", ">", "✓", "↻", "-", "->"
	}
}

func Print(a ...any) {
	_, _ = fmt.Fprintln(Stdout, a...)
}

func Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(Stdout, format, a...)
}

func Printe(a ...any) {
	_, _ = fmt.Fprintln(Stderr, a...)
}

func PrintError(a ...any) {
	_, _ = fmt.Fprintln(Stderr, append([]any{ERR}, a...)...)
}

func PrintErrorf(format string, a ...any) {
	_, _ = fmt.Fprintf(Stderr, "%s "+format, append([]any{ERR}, a...)...)
}

func PrintInfo(a ...any) {
	_, _ = fmt.Fprintln(Stdout, append([]any{INFO}, a...)...)
}

func PrintInfof(format string, a ...any) {
	_, _ = fmt.Fprintf(Stdout, "%s "+format, append([]any{INFO}, a...)...)
}

func PrintOk(a ...any) {
	_, _ = fmt.Fprintln(Stdout, append([]any{OK}, a...)...)
}

func PrintOkf(format string, a ...any) {
	_, _ = fmt.Fprintf(Stdout, "%s "+format, append([]any{OK}, a...)...)
}

func PrintItem(a ...any) {
	_, _ = fmt.Fprintln(Stdout, append([]any{ITEM}, a...)...)
}

func PrintItemf(format string, a ...any) {
	_, _ = fmt.Fprintf(Stdout, "%s "+format, append([]any{ITEM}, a...)...)
}

func PrintReload(a ...any) {
	_, _ = fmt.Fprintln(Stdout, append([]any{RELOAD}, a...)...)
}

// PrintMapping prints "from -> to" lines used for alias traces.
func PrintMapping(from, to string) {
	_, _ = fmt.Fprintln(Stdout, ITEM, from, ARROW, to)
}

func Red(s string) string {
	return ColorRed + s + ColorClear
}

func Green(s string) string {
	return ColorGreen + s + ColorClear
}

func Yellow(s string) string {
	return ColorYellow + s + ColorClear
}

func Blue(s string) string {
	return ColorBlue + s + ColorClear
}

func Magenta(s string) string {
	return ColorMagenta + s + ColorClear
}

func Cyan(s string) string {
	return ColorCyan + s + ColorClear
}
