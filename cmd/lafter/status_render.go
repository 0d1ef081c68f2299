package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderStatusLine(name string, passed bool, message string, colorize bool) string {
	status := "ERROR"
	color := ansiRed
	if passed {
		status = "OK"
		color = ansiGreen
	}
	statusText := fmt.Sprintf("[%s]", status)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", status, message)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, name+":", statusText)
	if colorize {
		return color + base + ansiReset
	}
	return base
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
