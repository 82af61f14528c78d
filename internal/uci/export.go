package uci

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ScriptExporter collects the run's uci operations and writes them out as a
// standalone deploy script. Like the recorder it is not live: queries return
// no data and detection uses offline defaults, since the script may target a
// device the tool never sees.
type ScriptExporter struct {
	Recorder

	runID string
}

func NewScriptExporter(runID string, logger *zap.Logger) *ScriptExporter {
	return &ScriptExporter{
		Recorder: Recorder{logger: logger.Named("uci.export")},
		runID:    runID,
	}
}

// WriteScript writes the collected commands to path as an executable shell
// script.
func (e *ScriptExporter) WriteScript(path string) error {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("# wrtplan deploy script\n")
	fmt.Fprintf(&b, "# run id: %s\n", e.runID)
	fmt.Fprintf(&b, "# generated: %s\n", time.Now().Format(time.RFC3339))
	b.WriteString("set -e\n\n")
	for _, cmd := range e.Commands() {
		b.WriteString(cmd)
		b.WriteByte('\n')
	}
	b.WriteString("\n/etc/init.d/network restart\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o755); err != nil {
		return fmt.Errorf("writing deploy script: %w", err)
	}
	return nil
}
