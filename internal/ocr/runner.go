package ocr

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"time"
)

// Runner abstracts the external commands the reader shells out to, so tests
// can stub them.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct {
	logger *slog.Logger
}

func newExecRunner(logger *slog.Logger) execRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return execRunner{logger: logger}
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		r.logger.Error("ocr.exec_failed",
			"cmd", name,
			"args", args,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
			"stderr", truncate(errb.String(), 8<<10),
		)
		return out.Bytes(), errb.Bytes(), err
	}

	r.logger.Debug("ocr.exec_ok",
		"cmd", name,
		"args", args,
		"duration_ms", time.Since(start).Milliseconds(),
		"stdout_bytes", out.Len(),
	)
	return out.Bytes(), errb.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
