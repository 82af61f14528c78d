package uci

import (
	"fmt"

	"go.uber.org/zap"
)

// Recorder is the dry-run backend: it records every operation as the uci
// command line it would have produced, and answers all queries with "no
// data" so detection uses its offline defaults.
type Recorder struct {
	logger   *zap.Logger
	commands []string
}

func NewRecorder(logger *zap.Logger) *Recorder {
	return &Recorder{logger: logger.Named("uci.dryrun")}
}

func (r *Recorder) Set(path, value string) {
	r.record(fmt.Sprintf("uci set %s='%s'", path, value))
}

func (r *Recorder) AddList(path, value string) {
	r.record(fmt.Sprintf("uci add_list %s='%s'", path, value))
}

func (r *Recorder) Add(subsystem, sectionType string) string {
	r.record(fmt.Sprintf("uci add %s %s", subsystem, sectionType))
	return anonPath(subsystem, sectionType)
}

func (r *Recorder) Commit(subsystem string) {
	r.record(fmt.Sprintf("uci commit %s", subsystem))
}

func (r *Recorder) Query(string) (string, bool)    { return "", false }
func (r *Recorder) RunShell(string) (string, bool) { return "", false }
func (r *Recorder) Live() bool                     { return false }

// Commands returns everything recorded so far, in emission order.
func (r *Recorder) Commands() []string {
	out := make([]string, len(r.commands))
	copy(out, r.commands)
	return out
}

func (r *Recorder) record(line string) {
	r.commands = append(r.commands, line)
	r.logger.Info(line)
}
