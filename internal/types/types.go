// =============================================================================
// Commerce CSV - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser
//   - xlsxparser
//   - store
//   - commerce
//
// =============================================================================

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// FIELD NAMES
// =============================================================================

// Business-required columns. Any other column present in a source file is
// carried through untouched.
const (
	FieldName     = "name"
	FieldCategory = "category"
	FieldPrice    = "price"
	FieldQuantity = "quantity"
)

// =============================================================================
// RECORD
// =============================================================================

// Record represents a single row of a record file.
// Fields keep the order of the header they were read from.
type Record struct {
	// keys holds the field names in header order.
	keys []string

	// values maps field name -> raw string value.
	values map[string]string
}

// NewRecord builds a record from parallel header and value slices.
//
// RETURNS:
//   - The record.
//   - A ProcessingError if the slices differ in length or a header repeats.
func NewRecord(header, values []string) (Record, error) {
	if len(header) != len(values) {
		return Record{}, Processingf("build record", "", "expected %d fields, got %d", len(header), len(values))
	}

	r := Record{
		keys:   make([]string, 0, len(header)),
		values: make(map[string]string, len(header)),
	}
	for i, name := range header {
		if _, dup := r.values[name]; dup {
			return Record{}, Processingf("build record", "", "duplicate column %q", name)
		}
		r.keys = append(r.keys, name)
		r.values[name] = values[i]
	}

	return r, nil
}

// RecordOf is a convenience constructor taking alternating name/value pairs.
// Later duplicates overwrite earlier values but keep the first position.
func RecordOf(pairs ...string) Record {
	var r Record
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

// Set assigns a field value, appending the field if it is new.
func (r *Record) Set(name, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.values[name] = value
}

// Get returns the value of a field and whether it is present.
func (r Record) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the record carries the named field.
func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Keys returns a copy of the field names in order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.keys)
}

// Values returns the values for the given field names, in that order.
// Absent fields yield an empty string; callers validate presence first.
func (r Record) Values(fieldnames []string) []string {
	out := make([]string, len(fieldnames))
	for i, name := range fieldnames {
		out[i] = r.values[name]
	}
	return out
}

// Missing returns the subset of fieldnames the record does not carry.
func (r Record) Missing(fieldnames []string) []string {
	var missing []string
	for _, name := range fieldnames {
		if !r.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Extra returns the record's fields that are not part of fieldnames.
func (r Record) Extra(fieldnames []string) []string {
	allowed := make(map[string]struct{}, len(fieldnames))
	for _, name := range fieldnames {
		allowed[name] = struct{}{}
	}

	var extra []string
	for _, name := range r.keys {
		if _, ok := allowed[name]; !ok {
			extra = append(extra, name)
		}
	}
	return extra
}

// String renders the record as `{name: value, ...}` in field order.
func (r Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range r.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", name, r.values[name])
	}
	b.WriteByte('}')
	return b.String()
}

// =============================================================================
// REQUIRED-FIELD ACCESSORS
// =============================================================================

// Required returns the value of a business-required field.
//
// RETURNS:
//   - The raw value.
//   - A ProcessingError naming the field if it is absent.
func (r Record) Required(name string) (string, error) {
	v, ok := r.values[name]
	if !ok {
		return "", Processingf("read field", "", "missing required column %q", name)
	}
	return v, nil
}

// Name returns the `name` field.
func (r Record) Name() (string, error) {
	return r.Required(FieldName)
}

// Category returns the `category` field.
func (r Record) Category() (string, error) {
	return r.Required(FieldCategory)
}

// Price parses the `price` field as a decimal number.
func (r Record) Price() (float64, error) {
	raw, err := r.Required(FieldPrice)
	if err != nil {
		return 0, err
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, WrapProcessing("read field", "", fmt.Sprintf("invalid price %q", raw), err)
	}
	return price, nil
}

// Quantity parses the `quantity` field as an integer.
func (r Record) Quantity() (int, error) {
	raw, err := r.Required(FieldQuantity)
	if err != nil {
		return 0, err
	}
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, WrapProcessing("read field", "", fmt.Sprintf("invalid quantity %q", raw), err)
	}
	return qty, nil
}

// =============================================================================
// SEQUENCE
// =============================================================================

// Sequence is an ordered list of records sharing a column set.
type Sequence []Record

// Fieldnames returns the canonical column set: the first record's keys.
// An empty sequence has no columns.
func (s Sequence) Fieldnames() []string {
	if len(s) == 0 {
		return nil
	}
	return s[0].Keys()
}

// Filter returns the records for which keep returns true, preserving order.
// The first error returned by keep aborts the filter.
func (s Sequence) Filter(keep func(Record) (bool, error)) (Sequence, error) {
	out := make(Sequence, 0, len(s))
	for _, r := range s {
		ok, err := keep(r)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}
