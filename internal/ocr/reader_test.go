package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	calls  [][]string
	stderr string
	err    error
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, append([]string{name}, args...))
	return nil, []byte(s.stderr), s.err
}

func TestReadPage_RasterizeFailure(t *testing.T) {
	reader := NewPageReader(Config{DPI: 150}, nil)
	runner := &stubRunner{stderr: "Syntax Error: missing xref", err: errors.New("exit status 1")}
	reader.SetRunner(runner)

	_, err := reader.ReadPage(context.Background(), "broken.pdf", 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftoppm")
	assert.Contains(t, err.Error(), "missing xref")

	// pdftoppm numbers pages from 1, so page index 8 renders page 9 only.
	require.Len(t, runner.calls, 1)
	call := runner.calls[0]
	assert.Equal(t, "pdftoppm", call[0])
	assert.Contains(t, call, "-f")
	assert.Contains(t, call, "-l")
	assert.Contains(t, call, "9")
	assert.Contains(t, call, "150")
}

func TestReadPage_NoImageProduced(t *testing.T) {
	reader := NewPageReader(Config{}, nil)
	reader.SetRunner(&stubRunner{})

	_, err := reader.ReadPage(context.Background(), "blank.pdf", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...(truncated)", truncate("abcdef", 3))
}
