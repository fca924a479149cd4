package app

import (
	"docgen/log"
	"os/exec"
	"strings"
)

// CommandLoggerAdapter writes every command started through util.Command
// to the info log.
type CommandLoggerAdapter struct{}

// NewCommandLoggerAdapter creates a new command logger adapter
func NewCommandLoggerAdapter() *CommandLoggerAdapter {
	return &CommandLoggerAdapter{}
}

// LogCommand implements the CommandLogger interface
func (a *CommandLoggerAdapter) LogCommand(cmd *exec.Cmd, source string) {
	if cmd == nil {
		return
	}
	dir := cmd.Dir
	if dir == "" {
		dir = "."
	}
	log.InfoLog.Printf("[%s] exec %s (dir %s)", source, strings.Join(cmd.Args, " "), dir)
}

// SetupCommandLogging installs the adapter as the global command logger.
func SetupCommandLogging() {
	log.SetCommandLogger(NewCommandLoggerAdapter())
}
