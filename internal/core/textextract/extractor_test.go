package textextract

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	out  string
	err  error
	args []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.args = append([]string{name}, args...)
	if s.err != nil {
		return nil, []byte("boom"), s.err
	}
	return []byte(s.out), nil, nil
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("Tournumber:\r\n\r\n*  12345 *\t\n\fLoad:\n")
	assert.Equal(t, []string{"Tournumber:", "", "* 12345 *", "", "Load:"}, got)
	assert.Equal(t, []string{}, SplitLines(""))
}

func TestSplitLinesComposesUnicode(t *testing.T) {
	// "e" + combining dot above + combining ogonek style input collapses to NFC
	got := SplitLines("Vežėjas:")
	require.Len(t, got, 1)
	assert.Equal(t, "Vežėjas:", got[0])
}

func TestExtractText(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sheet.TXT")
	require.NoError(t, os.WriteFile(p, []byte("Load:\nPaper\n"), 0o644))

	res, err := NewExtractor(Config{}, nil).Extract(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []string{"Load:", "Paper"}, res.Lines)
	assert.Equal(t, "TXT", res.SourceType)
	assert.Equal(t, "text", res.Method)
}

func TestExtractPDFViaPdftotext(t *testing.T) {
	r := &stubRunner{out: "Tournumber:\n\n* 1 *\n\fLoad:\n\f"}
	e := NewExtractor(Config{MaxPages: 3}, nil).WithRunner(r)

	res, err := e.Extract(context.Background(), "/tmp/order.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdftotext", res.Method)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, []string{"Tournumber:", "", "* 1 *", "", "Load:"}, res.Lines)
	assert.Equal(t, []string{"pdftotext", "-raw", "-enc", "UTF-8", "-eol", "unix", "-l", "3", "/tmp/order.pdf", "-"}, r.args)
}

func TestExtractPDFFallbackFails(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(p, []byte("not a pdf"), 0o644))

	r := &stubRunner{err: errors.New("exec: not found")}
	res, err := NewExtractor(Config{}, nil).WithRunner(r).Extract(context.Background(), p)
	require.Error(t, err)
	assert.NotEmpty(t, res.Warnings)
}

func TestExtractUnsupported(t *testing.T) {
	_, err := NewExtractor(Config{}, nil).Extract(context.Background(), "scan.png")
	require.Error(t, err)
}

func TestExecRunnerLogsThroughExtractorLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := NewExtractor(Config{}, logger)
	r, ok := e.runner.(execRunner)
	require.True(t, ok)
	assert.Same(t, logger, r.logger)

	_, _, err := r.Run(context.Background(), filepath.Join(t.TempDir(), "no-such-binary"), "-v")
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"msg":"textextract.exec.failed"`)
	assert.Contains(t, buf.String(), `"args":"-v"`)
}
