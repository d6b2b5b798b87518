// =============================================================================
// Commerce CSV - Record Store
// =============================================================================
//
// This module locates, reads and writes record files across two zones:
//   - input  : pre-existing source files
//   - output : consolidated and generated files (reports live beneath it)
//
// RESOLUTION ORDER (Lookup mode):
//   1. <output>/<name>
//   2. <input>/<name>
//   The first regular file found wins, so downstream commands transparently
//   pick up files a previous command generated.
//
// FILE FORMATS:
//   - *.xlsx : first worksheet, header on row 1 (xlsxparser)
//   - other  : delimited text with a header row (csvparser)
//
// Every error returned by this package is a *types.Error.
//
// =============================================================================

package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/commerce-csv/internal/config"
	"github.com/ginjaninja78/commerce-csv/internal/csvparser"
	"github.com/ginjaninja78/commerce-csv/internal/types"
	"github.com/ginjaninja78/commerce-csv/internal/xlsxparser"
	"github.com/ginjaninja78/commerce-csv/pkg/utils"
)

// =============================================================================
// ZONES
// =============================================================================

// Dirs holds the physical zone directories.
type Dirs struct {
	// Input is the zone of pre-existing source files.
	Input string

	// Output is the zone of generated files and the default write target.
	Output string

	// Reports is where text reports are written.
	Reports string
}

// DirsFromConfig builds the zones from the main configuration.
func DirsFromConfig(cfg *config.MainConfig) Dirs {
	return Dirs{
		Input:   cfg.InputDir,
		Output:  cfg.OutputDir,
		Reports: cfg.ReportPath(),
	}
}

// Mode selects how Open resolves a logical name.
type Mode int

const (
	// Lookup probes the output zone, then the input zone.
	Lookup Mode = iota

	// OutputOnly binds to the output zone without an existence check.
	OutputOnly
)

// =============================================================================
// STORE
// =============================================================================

// Store binds zones and CSV settings together.
type Store struct {
	dirs     Dirs
	settings config.CSVSettings
}

// New creates a Store over the given zones.
func New(dirs Dirs, settings config.CSVSettings) *Store {
	return &Store{dirs: dirs, settings: settings}
}

// Dirs returns the store's zones.
func (s *Store) Dirs() Dirs {
	return s.dirs
}

// Accessor is bound to one physical record file.
type Accessor struct {
	name     string
	path     string
	settings config.CSVSettings
}

// Name returns the logical name the accessor was opened with.
func (a *Accessor) Name() string {
	return a.name
}

// Path returns the resolved physical path.
func (a *Accessor) Path() string {
	return a.path
}

// Open resolves name to a physical file.
//
// PARAMETERS:
//   - name: The logical file name. Absolute paths are probed as-is.
//   - mode: Lookup or OutputOnly.
//
// RETURNS:
//   - An Accessor bound to the resolved path.
//   - A NotFound error if Lookup finds the name in neither zone.
func (s *Store) Open(name string, mode Mode) (*Accessor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, types.Processingf("open", "", "empty file name")
	}

	if mode == OutputOnly {
		return s.bind(name, filepath.Join(s.dirs.Output, name)), nil
	}

	for _, path := range s.candidates(name) {
		if utils.FileExists(path) {
			return s.bind(name, path), nil
		}
	}

	return nil, types.NotFound("open", name,
		fmt.Sprintf("file is in neither %q nor %q", s.dirs.Output, s.dirs.Input))
}

// candidates lists the paths probed for name, in priority order.
func (s *Store) candidates(name string) []string {
	if filepath.IsAbs(name) {
		return []string{name}
	}
	return []string{
		filepath.Join(s.dirs.Output, name),
		filepath.Join(s.dirs.Input, name),
	}
}

func (s *Store) bind(name, path string) *Accessor {
	return &Accessor{name: name, path: path, settings: s.settings}
}

// =============================================================================
// READ
// =============================================================================

// Read parses the bound file into a record sequence.
//
// RETURNS:
//   - The records in file order.
//   - NotFound if the bound file does not exist (OutputOnly accessors).
//   - ProcessingError for empty, header-only or malformed files and any I/O failure.
func (a *Accessor) Read() (types.Sequence, error) {
	records, err := a.read()
	if err == nil {
		return records, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return nil, types.NotFound("read", a.path, "file does not exist")
	}

	msg := "failed to read records"
	if errors.Is(err, csvparser.ErrEmpty) || errors.Is(err, xlsxparser.ErrEmpty) {
		msg = "file is empty or invalid"
	}
	return nil, &types.Error{Kind: types.KindProcessing, Op: "read", Path: a.path, Msg: msg, Err: err}
}

func (a *Accessor) read() (types.Sequence, error) {
	if isXLSX(a.path) {
		data, err := xlsxparser.Parse(a.path)
		if err != nil {
			return nil, err
		}
		return data.Records, nil
	}

	data, err := csvparser.Parse(a.path, a.settings)
	if err != nil {
		return nil, err
	}
	return data.Records, nil
}

// =============================================================================
// WRITE
// =============================================================================

// Write serializes records to targetDir/name with a header of exactly fieldnames.
//
// PARAMETERS:
//   - name: The destination file name.
//   - records: The records to write.
//   - fieldnames: The header; every record must carry exactly these fields.
//   - targetDir: The destination directory; empty selects the output zone.
//
// RETURNS:
//   - The path written.
//   - A ProcessingError on invalid records (before anything touches disk) or
//     on any I/O failure. An existing file is replaced, never merged.
func (s *Store) Write(name string, records types.Sequence, fieldnames []string, targetDir string) (string, error) {
	if err := validateRecords(name, records, fieldnames); err != nil {
		return "", err
	}

	return s.writeFile("write", name, targetDir, s.dirs.Output, func(w io.Writer) error {
		if isXLSX(name) {
			return xlsxparser.Write(w, fieldnames, records)
		}
		return csvparser.Write(w, fieldnames, records, s.settings)
	})
}

// WriteText writes plain text content to targetDir/name.
// An empty targetDir selects the report directory.
func (s *Store) WriteText(name, content, targetDir string) (string, error) {
	return s.writeFile("write report", name, targetDir, s.dirs.Reports, func(w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	})
}

// writeFile creates the destination directory and atomically replaces the file.
func (s *Store) writeFile(op, name, targetDir, defaultDir string, write func(io.Writer) error) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", types.Processingf(op, "", "empty file name")
	}
	if targetDir == "" {
		targetDir = defaultDir
	}

	path := filepath.Join(targetDir, name)
	if err := utils.EnsureDirectory(filepath.Dir(path)); err != nil {
		return "", types.WrapProcessing(op, path, "cannot create destination directory", err)
	}
	if err := utils.WriteFileAtomic(path, write); err != nil {
		return "", types.WrapProcessing(op, path, "failed to write file", err)
	}

	return path, nil
}

// validateRecords checks the header and every record before any write.
func validateRecords(name string, records types.Sequence, fieldnames []string) error {
	if len(fieldnames) == 0 {
		return types.Processingf("write", name, "no fieldnames given")
	}

	seen := make(map[string]struct{}, len(fieldnames))
	for _, f := range fieldnames {
		if _, dup := seen[f]; dup {
			return types.Processingf("write", name, "duplicate fieldname %q", f)
		}
		seen[f] = struct{}{}
	}

	for i, record := range records {
		if missing := record.Missing(fieldnames); len(missing) > 0 {
			return types.Processingf("write", name, "record %d: missing columns %v", i+1, missing)
		}
		if extra := record.Extra(fieldnames); len(extra) > 0 {
			return types.Processingf("write", name, "record %d: columns not in fieldnames %v", i+1, extra)
		}
	}

	return nil
}

// isXLSX reports whether name designates a spreadsheet record file.
func isXLSX(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}
