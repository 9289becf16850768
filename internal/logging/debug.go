package logging

import (
	"fmt"
	"io"
	"os"
)

// Output receives warning and error lines. Tests may replace it.
var Output io.Writer = os.Stderr

// DebugEnabled returns true if debug mode is enabled via DT_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("DT_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Printf(format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Println(args...)
	}
}

// Warnf reports a recovered problem, such as a corrupt blob replaced by its default.
func Warnf(format string, args ...interface{}) {
	fmt.Fprintf(Output, "warning: "+format+"\n", args...)
}

// Errorf reports a failure that was surfaced to the caller.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(Output, "error: "+format+"\n", args...)
}
