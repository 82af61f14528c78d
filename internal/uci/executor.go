// Package uci abstracts the UCI configuration surface of the target router.
//
// The pipeline talks to two capabilities: a write-only configuration sink
// (Set/AddList/Add/Commit, purely additive) and a read-only query side used
// by hardware detection. Three implementations exist: a live executor that
// shells out to the uci binary, a recorder for dry runs, and a script
// exporter that serializes the operations into a deploy script.
package uci

import "fmt"

// Executor is the contract every backend satisfies. All write operations are
// additive; nothing in the pipeline deletes or reads back what it wrote.
type Executor interface {
	// Set assigns a value to a dotted option path, or declares a named
	// section when path has no option component ("network.lan_dev" with
	// value "device").
	Set(path, value string)

	// AddList appends a value to a list option.
	AddList(path, value string)

	// Add creates an anonymous section of the given type and returns the
	// path usable to address it, "<subsystem>.@<type>[-1]".
	Add(subsystem, sectionType string) string

	// Commit persists staged changes for one subsystem.
	Commit(subsystem string)

	// Query runs a read-only uci pipeline ("get network.wan.device",
	// "show network | grep '=switch'") and returns the trimmed output.
	// ok is false when the target is unreachable, the query fails, or the
	// output is empty. Never panics, never returns an error.
	Query(query string) (out string, ok bool)

	// RunShell executes an arbitrary command line on the target and
	// returns its combined output. Used only by the switch-enumeration
	// probe. A failure of any kind returns ok=false.
	RunShell(commandLine string) (out string, ok bool)

	// Live reports whether a reachable device is behind this executor.
	// Recorder and exporter backends return false, which makes hardware
	// detection fall back to offline defaults.
	Live() bool
}

// anonPath renders the handle returned by Add.
func anonPath(subsystem, sectionType string) string {
	return fmt.Sprintf("%s.@%s[-1]", subsystem, sectionType)
}
