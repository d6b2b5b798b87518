package csvparser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/commerce-csv/internal/config"
	"github.com/ginjaninja78/commerce-csv/internal/types"
)

var commaSettings = config.CSVSettings{Delimiter: ","}

func TestParseReadsHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	content := "name,category,price,quantity\n" +
		"Product A,Category 1,10.5,5\n" +
		"Product B,Category 2,20.0,3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	data, err := Parse(path, commaSettings)
	require.NoError(t, err)
	require.Equal(t, path, data.SourceFile)
	require.Equal(t, []string{"name", "category", "price", "quantity"}, data.Headers)
	require.Len(t, data.Records, 2)

	name, _ := data.Records[0].Get("name")
	require.Equal(t, "Product A", name)
	price, _ := data.Records[1].Get("price")
	require.Equal(t, "20.0", price)
}

func TestReadRejectsEmptyAndHeaderOnly(t *testing.T) {
	for _, content := range []string{"", "Not a valid CSV content\n", "name,price\n"} {
		_, err := Read(strings.NewReader(content), commaSettings)
		require.ErrorIs(t, err, ErrEmpty, "content %q", content)
	}
}

func TestReadRejectsInconsistentRowShape(t *testing.T) {
	content := "name,price\nA,1\nB,2,extra\n"

	_, err := Read(strings.NewReader(content), commaSettings)
	require.Error(t, err)

	var parseErr *csv.ParseError
	require.True(t, errors.As(err, &parseErr), "want csv.ParseError, got %v", err)
}

func TestReadRejectsDuplicateHeaders(t *testing.T) {
	_, err := Read(strings.NewReader("name,name\nA,B\n"), commaSettings)
	require.ErrorIs(t, err, types.ErrProcessing)
}

func TestReadStripsBOMAndKeepsHeadersVerbatim(t *testing.T) {
	content := "\ufeff name ,,price\nA,x,1\n"

	data, err := Read(strings.NewReader(content), commaSettings)
	require.NoError(t, err)
	require.Equal(t, []string{" name ", "", "price"}, data.Headers)

	v, ok := data.Records[0].Get("")
	require.True(t, ok)
	require.Equal(t, "x", v)
}

func TestReadHonorsDelimiter(t *testing.T) {
	data, err := Read(strings.NewReader("name;price\nA;1,5\n"), config.CSVSettings{Delimiter: ";"})
	require.NoError(t, err)

	price, _ := data.Records[0].Get("price")
	require.Equal(t, "1,5", price)
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	fieldnames := []string{"name", "category", "price", "quantity"}
	records := types.Sequence{
		types.RecordOf("name", "Product A", "category", "Category 1", "price", "10.5", "quantity", "5"),
		types.RecordOf("name", "Quoted, \"B\"", "category", "Category 2", "price", "20.0", "quantity", "3"),
		types.RecordOf("name", "", "category", "", "price", "", "quantity", ""),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fieldnames, records, commaSettings))
	require.True(t, strings.HasPrefix(buf.String(), "name,category,price,quantity\n"))

	data, err := Read(&buf, commaSettings)
	require.NoError(t, err)
	require.Equal(t, fieldnames, data.Headers)
	require.Len(t, data.Records, len(records))
	for i := range records {
		require.Equal(t, records[i].Keys(), data.Records[i].Keys())
		require.Equal(t, records[i].Values(fieldnames), data.Records[i].Values(fieldnames))
	}
}

func TestWriteThenReadRoundTripSingleColumn(t *testing.T) {
	fieldnames := []string{"note"}
	records := types.Sequence{
		types.RecordOf("note", "x"),
		types.RecordOf("note", ""),
		types.RecordOf("note", "y"),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fieldnames, records, commaSettings))
	require.Equal(t, "note\nx\n\"\"\ny\n", buf.String())

	data, err := Read(&buf, commaSettings)
	require.NoError(t, err)
	require.Len(t, data.Records, len(records))
	for i := range records {
		require.Equal(t, records[i].Values(fieldnames), data.Records[i].Values(fieldnames))
	}
}

func TestWriteThenReadRoundTripAllEmptySingleColumn(t *testing.T) {
	records := types.Sequence{types.RecordOf("note", ""), types.RecordOf("note", "")}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []string{"note"}, records, commaSettings))

	data, err := Read(&buf, commaSettings)
	require.NoError(t, err)
	require.Len(t, data.Records, 2)
}

func TestWriteThenReadRoundTripHeaderText(t *testing.T) {
	for _, fieldnames := range [][]string{{" name"}, {""}, {" name ", "", "price\t"}} {
		record := types.Record{}
		for i, f := range fieldnames {
			record.Set(f, fmt.Sprintf("v%d", i))
		}

		var buf bytes.Buffer
		require.NoError(t, Write(&buf, fieldnames, types.Sequence{record}, commaSettings))

		data, err := Read(&buf, commaSettings)
		require.NoError(t, err, "fieldnames %q", fieldnames)
		require.Equal(t, fieldnames, data.Headers)
		require.Equal(t, fieldnames, data.Records[0].Keys())
		require.Equal(t, record.Values(fieldnames), data.Records[0].Values(fieldnames))
	}
}

func TestWriteUsesFieldnameOrder(t *testing.T) {
	records := types.Sequence{types.RecordOf("b", "2", "a", "1")}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []string{"a", "b"}, records, commaSettings))
	require.Equal(t, "a,b\n1,2\n", buf.String())
}
