// Package export turns a report's item IDs into a local file and hands it
// to the platform share facility.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/erazemk/popis/internal/model"
)

// State is a step of an export run.
type State int

// Export states in the order a successful run passes through them.
const (
	Idle State = iota
	Requesting
	Decoding
	Writing
	Sharing
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Requesting:
		return "requesting"
	case Decoding:
		return "decoding"
	case Writing:
		return "writing"
	case Sharing:
		return "sharing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Format is the file format written to disk.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	return f == FormatCSV || f == FormatXLSX
}

// BaseName is the file name written for every export, without extension.
const BaseName = "report"

// sheetName names the single worksheet of an XLSX export.
const sheetName = "Report"

var utf8BOM = []byte("\xef\xbb\xbf")

// Source renders items as a CSV payload.
type Source interface {
	ExportReport(ctx context.Context, ids []int64) ([]byte, string, error)
}

// Result describes a finished export.
type Result struct {
	Path    string
	Rows    int
	Shared  bool
	Message string
}

// Pipeline runs exports. A Pipeline may be reused but not shared between
// concurrent runs.
type Pipeline struct {
	Source Source
	// Dir receives the exported file. Empty selects os.TempDir().
	Dir    string
	Format Format
	// Sharer is optional. Without one the run ends by reporting the path.
	Sharer Sharer
	// OnState, when set, observes every state transition.
	OnState func(State)

	state State
}

// State returns the state the last run reached.
func (p *Pipeline) State() State {
	return p.state
}

func (p *Pipeline) enter(s State) {
	p.state = s
	slog.Info("export state", "state", s.String())
	if p.OnState != nil {
		p.OnState(s)
	}
}

func (p *Pipeline) fail(err error) (*Result, error) {
	p.enter(Failed)
	slog.Error("export failed", "error", err)
	return nil, err
}

// Run exports the items with the given IDs. Duplicate IDs are collapsed.
// An empty ID set fails with model.ErrUserInput before any request is made.
func (p *Pipeline) Run(ctx context.Context, ids []int64) (*Result, error) {
	p.state = Idle
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: nothing to export", model.ErrUserInput)
	}
	format := p.Format
	if format == "" {
		format = FormatCSV
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: unknown export format %q", model.ErrUserInput, format)
	}

	p.enter(Requesting)
	payload, _, err := p.Source.ExportReport(ctx, ids)
	if err != nil {
		if !errors.Is(err, model.ErrNetwork) {
			err = fmt.Errorf("%w: %w", model.ErrNetwork, err)
		}
		return p.fail(err)
	}

	p.enter(Decoding)
	records, err := decode(payload)
	if err != nil {
		return p.fail(err)
	}

	p.enter(Writing)
	content := payload
	if format == FormatXLSX {
		if content, err = toXLSX(records); err != nil {
			return p.fail(fmt.Errorf("%w: %w", model.ErrDecode, err))
		}
	}
	dir := p.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, BaseName+"."+string(format))
	if err := writeFile(path, content); err != nil {
		return p.fail(fmt.Errorf("%w: %w", model.ErrStorage, err))
	}

	result := &Result{Path: path, Rows: len(records) - 1}
	slog.Info("report exported", "path", path, "rows", result.Rows, "format", string(format))

	p.enter(Sharing)
	result.Shared, result.Message = p.share(ctx, path)

	p.enter(Done)
	return result, nil
}

// share hands path to the Sharer. Any failure is reported in the message
// and never fails the run.
func (p *Pipeline) share(ctx context.Context, path string) (bool, string) {
	if p.Sharer == nil {
		return false, "report saved to " + path
	}
	if err := p.Sharer.Share(ctx, path); err != nil {
		if !errors.Is(err, ErrNoShareTarget) {
			slog.Warn("sharing export failed", "path", path, "error", err)
		}
		return false, "sharing unavailable, report saved to " + path
	}
	return true, "report shared from " + path
}

// decode checks that payload is a CSV stream with a header row and returns
// its records. A leading UTF-8 byte order mark is ignored.
func decode(payload []byte) ([][]string, error) {
	body := bytes.TrimPrefix(payload, utf8BOM)
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty export payload", model.ErrDecode)
	}
	if c := bytes.TrimSpace(body)[0]; c == '{' || c == '[' {
		return nil, fmt.Errorf("%w: export payload is JSON, not CSV", model.ErrDecode)
	}

	r := csv.NewReader(bytes.NewReader(body))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrDecode, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: export payload has no header", model.ErrDecode)
	}
	return records, nil
}

func toXLSX(records [][]string) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("adding sheet: %w", err)
	}
	for _, record := range records {
		row := sheet.AddRow()
		for _, value := range record {
			row.AddCell().SetString(value)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeFile replaces path by renaming a temp file from the same directory.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming to %s: %w", path, err)
	}
	return nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ParseFormat returns the format named by s, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatCSV, nil
	}
	if !f.Valid() {
		return "", fmt.Errorf("unknown export format %q", s)
	}
	return f, nil
}
