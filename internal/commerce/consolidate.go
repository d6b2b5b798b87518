package commerce

import (
	"fmt"
	"sort"

	"github.com/ginjaninja78/commerce-csv/internal/store"
	"github.com/ginjaninja78/commerce-csv/internal/types"
)

// Consolidate merges the records of several files into one output file.
//
// PARAMETERS:
//   - files: Logical names, resolved output zone first, then input zone.
//   - output: The name of the consolidated file in the output zone.
//
// RETURNS:
//   - The path of the written file.
//   - A domain error if any source is missing, empty, malformed, or has a
//     column set different from the first source.
//
// Records keep file order, then row order. The output header is the first
// record's column order.
func (s *Service) Consolidate(files []string, output string) (string, error) {
	if len(files) == 0 {
		return "", types.Processingf("consolidate", "", "no files to consolidate")
	}

	var (
		consolidated types.Sequence
		schema       []string
		schemaSource string
	)

	for _, name := range files {
		acc, err := s.store.Open(name, store.Lookup)
		if err != nil {
			return "", err
		}

		records, err := acc.Read()
		if err != nil {
			return "", err
		}
		s.logger.Debug("Read source file", "file", acc.Path(), "rows", len(records))

		if len(records) > 0 {
			if schema == nil {
				schema = records.Fieldnames()
				schemaSource = name
			} else if !sameColumns(schema, records.Fieldnames()) {
				return "", types.Processingf("consolidate", name,
					"columns %v do not match %v from %s", records.Fieldnames(), schema, schemaSource)
			}
		}

		consolidated = append(consolidated, records...)
	}

	if len(consolidated) == 0 {
		return "", types.Processingf("consolidate", "", "no data was consolidated")
	}

	path, err := s.store.Write(output, consolidated, consolidated.Fieldnames(), "")
	if err != nil {
		return "", err
	}

	s.logger.Info("Consolidated files", "files", len(files), "rows", len(consolidated), "output", path)
	fmt.Fprintf(s.out, "Les fichiers %v ont été consolidés dans %s.\n", files, path)

	return path, nil
}

// sameColumns reports whether a and b hold the same column names, in any order.
func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
