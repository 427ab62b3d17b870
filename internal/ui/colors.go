// Package ui provides terminal output helpers for susepkg.
package ui

import (
	"os"

	"github.com/fatih/color"
)

var (
	// Error styles error messages.
	Error = color.New(color.FgRed, color.Bold)

	// Muted styles informational notices.
	Muted = color.New(color.FgHiBlack)

	// Colors for table columns
	ProductName    = color.New(color.FgCyan)
	PackageName    = color.New(color.FgWhite, color.Bold)
	PackageVersion = color.New(color.FgGreen)
)

// UseColors represents whether colors should be used.
var UseColors = true

// UseUnicode represents whether unicode symbols should be used.
var UseUnicode = true

// SymbolError prefixes error messages.
var SymbolError = "✗"

// Init initializes the UI settings based on configuration.
func Init(useColors, useUnicode bool) {
	UseColors = useColors
	UseUnicode = useUnicode

	if !useColors || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	if !useUnicode {
		SymbolError = "[ERROR]"
	}
}

// ErrorMsg prints an error message to stderr.
func ErrorMsg(format string, args ...interface{}) {
	Error.Fprintf(os.Stderr, SymbolError+" "+format+"\n", args...)
}
