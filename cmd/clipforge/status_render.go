package main

import (
	"fmt"
	"io"
	"strings"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

var statusStyles = map[statusKind]struct {
	label string
	color string
}{
	statusInfo:  {"INFO", "\x1b[34m"},
	statusOK:    {"OK", "\x1b[32m"},
	statusWarn:  {"WARN", "\x1b[33m"},
	statusError: {"ERROR", "\x1b[31m"},
}

const ansiReset = "\x1b[0m"

// printStatus writes an indented "Label:  [OK] message" line. Only the
// bracketed status token is colored so copied terminal output stays readable.
func printStatus(w io.Writer, label string, kind statusKind, message string, colorize bool) {
	style := statusStyles[kind]
	token := "[" + style.label + "]"
	if colorize {
		token = style.color + token + ansiReset
	}
	fmt.Fprintf(w, "  %-14s %s", label+":", token)
	if message != "" {
		fmt.Fprintf(w, " %s", message)
	}
	fmt.Fprintln(w)
}

func printSection(w io.Writer, title string, colorize bool) {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	if colorize {
		line = statusStyles[statusInfo].color + line + ansiReset
	}
	fmt.Fprintln(w, line)
}
