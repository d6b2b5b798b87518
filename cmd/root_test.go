package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/commerce-csv/internal/commerce"
	"github.com/ginjaninja78/commerce-csv/internal/config"
	"github.com/ginjaninja78/commerce-csv/internal/types"
)

// fakeOperations records the calls the commands make.
type fakeOperations struct {
	calls []string

	files   []string
	file    string
	output  string
	query   commerce.Query
	summary bool

	err error
}

func (f *fakeOperations) Consolidate(files []string, output string) (string, error) {
	f.calls = append(f.calls, "consolidate")
	f.files, f.output = files, output
	return output, f.err
}

func (f *fakeOperations) Search(file string, q commerce.Query) (types.Sequence, error) {
	f.calls = append(f.calls, "search")
	f.file, f.query = file, q
	return nil, f.err
}

func (f *fakeOperations) Report(file, output string, summary bool) (string, error) {
	f.calls = append(f.calls, "report")
	f.file, f.output, f.summary = file, output, summary
	return output, f.err
}

type result struct {
	code   int
	stdout string
	stderr string
}

// runFake runs the CLI in an empty directory against fake operations.
func runFake(t *testing.T, fake *fakeOperations, args ...string) result {
	t.Helper()
	chdir(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	code := runWith(args, &stdout, &stderr, func(*config.MainConfig, io.Writer, commerce.Logger) operations {
		return fake
	})
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// =============================================================================
// ARGUMENT HANDLING
// =============================================================================

func TestNoCommandPrintsHelp(t *testing.T) {
	fake := &fakeOperations{}
	res := runFake(t, fake)

	require.Equal(t, 1, res.code)
	require.Contains(t, res.stdout, "Usage:")
	require.Empty(t, res.stderr)
	require.Empty(t, fake.calls)
}

func TestConsolidateArguments(t *testing.T) {
	fake := &fakeOperations{}
	res := runFake(t, fake, "consolidate", "--files", "file1.csv", "file2.csv", "--output", "output.csv")

	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, []string{"consolidate"}, fake.calls)
	require.Equal(t, []string{"file1.csv", "file2.csv"}, fake.files)
	require.Equal(t, "output.csv", fake.output)
}

func TestConsolidateFileLists(t *testing.T) {
	fake := &fakeOperations{}
	res := runFake(t, fake, "consolidate", "--files", "a.csv,b.csv", "--files", "c.csv")

	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, []string{"a.csv", "b.csv", "c.csv"}, fake.files)
	require.Equal(t, DefaultConsolidatedFile, fake.output)
}

func TestConsolidateRequiresFiles(t *testing.T) {
	fake := &fakeOperations{}
	res := runFake(t, fake, "consolidate")

	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "--files")
	require.Empty(t, fake.calls)
}

func TestSearchArguments(t *testing.T) {
	fake := &fakeOperations{}
	res := runFake(t, fake, "search", "--file", "file.csv", "--query", "Product")

	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "file.csv", fake.file)
	require.Equal(t, commerce.Query{Text: "Product"}, fake.query)
}

func TestSearchWithFilters(t *testing.T) {
	fake := &fakeOperations{}
	res := runFake(t, fake, "search", "--query", "Product", "--category", "Category1", "--price-range", "10,50")

	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, DefaultDataFile, fake.file)
	require.Equal(t, commerce.Query{Text: "Product", Category: "Category1", PriceRange: "10,50"}, fake.query)
}

func TestSearchRequiresQuery(t *testing.T) {
	fake := &fakeOperations{}
	res := runFake(t, fake, "search", "--file", "file.csv")

	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "query")
	require.Empty(t, fake.calls)
}

func TestSearchMarksQueryRequired(t *testing.T) {
	searchCmd := newSearchCmd(&app{})

	flag := searchCmd.Flags().Lookup("query")
	require.NotNil(t, flag)
	require.Equal(t, []string{"true"}, flag.Annotations[cobra.BashCompOneRequiredFlag])
}

func TestReportArguments(t *testing.T) {
	fake := &fakeOperations{}
	res := runFake(t, fake, "report", "--file", "file.csv", "--output", "report.txt")

	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "file.csv", fake.file)
	require.Equal(t, "report.txt", fake.output)
	require.False(t, fake.summary)

	fake = &fakeOperations{}
	res = runFake(t, fake, "report", "--summary")

	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, DefaultDataFile, fake.file)
	require.Equal(t, DefaultReportFile, fake.output)
	require.True(t, fake.summary)
}

func TestUnknownFlagFails(t *testing.T) {
	fake := &fakeOperations{}
	res := runFake(t, fake, "report", "--summary", "--nonexistent")

	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "nonexistent")
	require.Empty(t, fake.calls)
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

func TestDomainErrorMessage(t *testing.T) {
	fake := &fakeOperations{err: types.Processingf("consolidate", "", "Erreur simulée")}
	res := runFake(t, fake, "consolidate", "--files", "file1.csv", "file2.csv", "--output", "output.csv")

	require.Equal(t, 1, res.code)
	require.True(t, strings.HasPrefix(res.stderr, "Erreur : "), res.stderr)
	require.Contains(t, res.stderr, "Erreur simulée")
}

func TestNotFoundIsDomainError(t *testing.T) {
	fake := &fakeOperations{err: types.NotFound("open", "x.csv", "file not found")}
	res := runFake(t, fake, "report", "--file", "x.csv")

	require.Equal(t, 1, res.code)
	require.Equal(t, "Erreur : open x.csv: file not found\n", res.stderr)
}

func TestUnexpectedErrorMessage(t *testing.T) {
	fake := &fakeOperations{err: errors.New("Erreur inattendue")}
	res := runFake(t, fake, "consolidate", "--files", "file1.csv", "file2.csv", "--output", "output.csv")

	require.Equal(t, 1, res.code)
	require.Equal(t, "Erreur imprévue : Erreur inattendue\n", res.stderr)
}

func TestMissingExplicitConfigFails(t *testing.T) {
	fake := &fakeOperations{}
	res := runFake(t, fake, "--config", "missing.yaml", "search", "--query", "x")

	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "Erreur imprévue : ")
	require.Empty(t, fake.calls)
}

func TestVersion(t *testing.T) {
	res := runFake(t, &fakeOperations{}, "version")

	require.Equal(t, 0, res.code)
	require.Contains(t, res.stdout, "Commerce CSV")
	require.Contains(t, res.stdout, "Version:    "+Version)
}

// =============================================================================
// END TO END
// =============================================================================

func TestEndToEnd(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "in")
	output := filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(input, 0755))

	cfgPath := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"input_dir: "+input+"\n"+
			"output_dir: "+output+"\n"+
			"log_level: error\n"), 0644))

	require.NoError(t, os.WriteFile(filepath.Join(input, "stock1.csv"), []byte(
		"name,category,price,quantity\nProduct A,Category 1,10.0,5\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(input, "stock2.csv"), []byte(
		"name,category,price,quantity\nProduct B,Category 2,20.0,3\n"), 0644))

	exec := func(args ...string) result {
		var stdout, stderr bytes.Buffer
		code := run(append([]string{"--config", cfgPath}, args...), &stdout, &stderr)
		return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
	}

	res := exec("consolidate", "--files", "stock1.csv,stock2.csv", "--output", "all.csv")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "ont été consolidés dans "+filepath.Join(output, "all.csv"))

	res = exec("search", "--file", "all.csv", "--query", "Product", "--price-range", "15,25")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "Product B")
	require.NotContains(t, res.stdout, "Product A")

	res = exec("report", "--file", "all.csv", "--summary")
	require.Equal(t, 0, res.code, res.stderr)

	content, err := os.ReadFile(filepath.Join(output, "report", DefaultReportFile))
	require.NoError(t, err)
	require.Contains(t, string(content), "Nombre de produits : 2\n")
	require.Contains(t, string(content), "Quantité totale : 8\n")
	require.Contains(t, string(content), "Valeur totale : 110.00€\n")

	res = exec("search", "--file", "nowhere.csv", "--query", "x")
	require.Equal(t, 1, res.code)
	require.True(t, strings.HasPrefix(res.stderr, "Erreur : "), res.stderr)

	res = exec("search", "--file", "all.csv", "--query", "x", "--price-range", "1-2")
	require.Equal(t, 1, res.code)
	require.True(t, strings.HasPrefix(res.stderr, "Erreur : "), res.stderr)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
