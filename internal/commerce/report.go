package commerce

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ginjaninja78/commerce-csv/internal/store"
	"github.com/ginjaninja78/commerce-csv/internal/types"
)

// Stats holds the aggregates of a report.
type Stats struct {
	// Products is the number of records.
	Products int

	// TotalQuantity is the sum of quantity.
	TotalQuantity int

	// TotalValue is the exact sum of price × quantity.
	TotalValue *big.Rat
}

// TotalValueString formats TotalValue with two decimals, rounding halves to
// even (0.125 -> "0.12", 0.375 -> "0.38").
func (s Stats) TotalValueString() string {
	if s.TotalValue == nil {
		return "0.00"
	}
	return formatCents(s.TotalValue)
}

// formatCents renders v with two decimals, rounding half to even.
func formatCents(v *big.Rat) string {
	scaled := new(big.Rat).Mul(v, big.NewRat(100, 1))
	num := new(big.Int).Abs(scaled.Num())
	den := scaled.Denom()

	cents, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	switch rem.Lsh(rem, 1).Cmp(den) {
	case 1:
		cents.Add(cents, big.NewInt(1))
	case 0:
		if cents.Bit(0) == 1 {
			cents.Add(cents, big.NewInt(1))
		}
	}

	digits := cents.String()
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	out := digits[:len(digits)-2] + "." + digits[len(digits)-2:]
	if v.Sign() < 0 {
		out = "-" + out
	}
	return out
}

// ComputeStats aggregates records. Prices are summed as exact rationals so
// the total is not subject to binary rounding. Errors are *types.Error of
// kind processing.
func ComputeStats(records types.Sequence) (Stats, error) {
	stats := Stats{Products: len(records), TotalValue: new(big.Rat)}

	for i, r := range records {
		qty, err := r.Quantity()
		if err != nil {
			return Stats{}, recordError("compute stats", i, err)
		}
		price, err := exactPrice(r)
		if err != nil {
			return Stats{}, recordError("compute stats", i, err)
		}

		stats.TotalQuantity += qty
		line := new(big.Rat).Mul(price, new(big.Rat).SetInt64(int64(qty)))
		stats.TotalValue.Add(stats.TotalValue, line)
	}

	return stats, nil
}

// recordError reports a processing failure on the i-th record (0-based).
func recordError(op string, i int, err error) *types.Error {
	return &types.Error{Kind: types.KindProcessing, Op: op, Msg: fmt.Sprintf("record %d", i+1), Err: err}
}

// exactPrice parses the price field as a rational.
// Validation goes through Record.Price so error text matches the search path.
func exactPrice(r types.Record) (*big.Rat, error) {
	if _, err := r.Price(); err != nil {
		return nil, err
	}
	raw, _ := r.Get(types.FieldPrice)
	raw = strings.TrimSpace(raw)

	price, ok := new(big.Rat).SetString(raw)
	if !ok {
		// ParseFloat accepts forms Rat rejects (hex floats, "1_000").
		f, _ := strconv.ParseFloat(raw, 64)
		price = new(big.Rat)
		if price.SetFloat64(f) == nil {
			return nil, types.Processingf("read field", "", "invalid price %q", raw)
		}
	}
	return price, nil
}

// FormatReport renders the report text.
//
// FORMAT:
//   Rapport pour <source>
//   Nombre de produits : <n>
//   Quantité totale : <n>
//   Valeur totale : <x.xx>€
//   [blank line, "Détail des produits :", one line per record]
func FormatReport(source string, records types.Sequence, stats Stats, summary bool) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Rapport pour %s\n", source)
	fmt.Fprintf(&b, "Nombre de produits : %d\n", stats.Products)
	fmt.Fprintf(&b, "Quantité totale : %d\n", stats.TotalQuantity)
	fmt.Fprintf(&b, "Valeur totale : %s€\n", stats.TotalValueString())

	if !summary {
		return b.String(), nil
	}

	b.WriteString("\nDétail des produits :\n")
	for i, r := range records {
		line, err := detailLine(r)
		if err != nil {
			return "", recordError("format report", i, err)
		}
		b.WriteString(line)
	}

	return b.String(), nil
}

// detailLine renders one summary line with the raw field values.
func detailLine(r types.Record) (string, error) {
	var fields [4]string
	for i, name := range []string{types.FieldName, types.FieldCategory, types.FieldPrice, types.FieldQuantity} {
		v, err := r.Required(name)
		if err != nil {
			return "", err
		}
		fields[i] = v
	}
	return fmt.Sprintf("- %s (Catégorie : %s, Prix : %s€, Quantité : %s)\n",
		fields[0], fields[1], fields[2], fields[3]), nil
}

// Report writes a summary of file to the report directory.
//
// PARAMETERS:
//   - file: Logical name of the source, resolved output zone first.
//   - output: Name of the report file beneath the report directory.
//   - summary: Append one detail line per record.
//
// RETURNS:
//   - The path of the written report.
//   - A domain error if the source cannot be read, a numeric field does not
//     parse, or the report cannot be written.
func (s *Service) Report(file, output string, summary bool) (string, error) {
	acc, err := s.store.Open(file, store.Lookup)
	if err != nil {
		return "", err
	}
	records, err := acc.Read()
	if err != nil {
		return "", err
	}

	stats, err := ComputeStats(records)
	if err != nil {
		return "", types.WrapProcessing("report", file, "cannot compute totals", err)
	}

	content, err := FormatReport(file, records, stats, summary)
	if err != nil {
		return "", types.WrapProcessing("report", file, "cannot format report", err)
	}

	path, err := s.store.WriteText(output, content, "")
	if err != nil {
		return "", types.WrapProcessing("report", output, "failed to generate report", err)
	}

	s.logger.Info("Generated report", "source", acc.Path(), "products", stats.Products, "output", path)
	fmt.Fprintf(s.out, "Rapport généré avec succès dans : %s\n", path)

	return path, nil
}
