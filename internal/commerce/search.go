package commerce

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/commerce-csv/internal/store"
	"github.com/ginjaninja78/commerce-csv/internal/types"
)

// NoResults is printed when a search matches nothing.
const NoResults = "Aucun résultat trouvé."

// Query holds search criteria. Empty Category and PriceRange are not applied.
type Query struct {
	// Text is matched case-insensitively as a substring of the name field.
	Text string

	// Category is matched case-insensitively against the whole category field.
	Category string

	// PriceRange is "min,max", inclusive on both ends.
	PriceRange string
}

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min float64
	Max float64
}

// Contains reports whether price lies within the range, bounds included.
func (r PriceRange) Contains(price float64) bool {
	return r.Min <= price && price <= r.Max
}

// ParsePriceRange parses "min,max".
//
// RETURNS:
//   - The range.
//   - A ProcessingError unless the string splits into exactly two numbers.
func ParsePriceRange(s string) (PriceRange, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return PriceRange{}, types.Processingf("parse price range", "", "expected \"min,max\", got %q", s)
	}

	var bounds [2]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return PriceRange{}, types.WrapProcessing("parse price range", "",
				fmt.Sprintf("invalid bound %q in %q", part, s), err)
		}
		bounds[i] = v
	}

	return PriceRange{Min: bounds[0], Max: bounds[1]}, nil
}

// Search reads a file and filters its records. A malformed q.PriceRange
// fails after the file is read, whatever the other filters match.
//
// FILTER ORDER (each narrows the previous result):
//   1. q.Text against name (always applied)
//   2. q.Category against category (if set)
//   3. q.PriceRange against price (if set)
//
// Each surviving record is printed on its own line, or NoResults when none
// survive. The filtered sequence is returned in file order.
func (s *Service) Search(file string, q Query) (types.Sequence, error) {
	acc, err := s.store.Open(file, store.Lookup)
	if err != nil {
		return nil, err
	}
	records, err := acc.Read()
	if err != nil {
		return nil, err
	}

	var priceRange PriceRange
	if q.PriceRange != "" {
		if priceRange, err = ParsePriceRange(q.PriceRange); err != nil {
			return nil, err
		}
	}

	results, err := FilterByText(records, q.Text)
	if err != nil {
		return nil, err
	}
	if q.Category != "" {
		if results, err = FilterByCategory(results, q.Category); err != nil {
			return nil, err
		}
	}
	if q.PriceRange != "" {
		if results, err = FilterByPrice(results, priceRange); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("Search complete", "file", acc.Path(), "query", q.Text, "scanned", len(records), "matched", len(results))

	if len(results) == 0 {
		fmt.Fprintln(s.out, NoResults)
		return results, nil
	}
	for _, record := range results {
		fmt.Fprintln(s.out, record.String())
	}

	return results, nil
}

// FilterByText keeps records whose name contains text, ignoring case.
func FilterByText(records types.Sequence, text string) (types.Sequence, error) {
	needle := strings.ToLower(text)
	return records.Filter(func(r types.Record) (bool, error) {
		name, err := r.Name()
		if err != nil {
			return false, err
		}
		return strings.Contains(strings.ToLower(name), needle), nil
	})
}

// FilterByCategory keeps records whose category equals category, ignoring case.
func FilterByCategory(records types.Sequence, category string) (types.Sequence, error) {
	return records.Filter(func(r types.Record) (bool, error) {
		c, err := r.Category()
		if err != nil {
			return false, err
		}
		return strings.EqualFold(c, category), nil
	})
}

// FilterByPrice keeps records whose price lies in the range.
func FilterByPrice(records types.Sequence, priceRange PriceRange) (types.Sequence, error) {
	return records.Filter(func(r types.Record) (bool, error) {
		price, err := r.Price()
		if err != nil {
			return false, err
		}
		return priceRange.Contains(price), nil
	})
}
