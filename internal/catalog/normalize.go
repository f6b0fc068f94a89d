package catalog

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/storefront/internal/model"
)

// Image field names, in order of preference. image_url is the derived
// (resized/CDN) URL the backend adds next to the uploaded asset path.
const (
	fieldImageURL = "image_url"
	fieldImage    = "image"
)

var leadingDecimal = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Normalize converts a raw backend record into a canonical Product. It fails
// only when the id cannot be coerced to an integer; every other field falls
// back to its zero value.
func Normalize(raw model.RawProduct) (model.Product, error) {
	id, err := coerceID(raw["id"])
	if err != nil {
		return model.Product{}, err
	}

	return model.Product{
		ID:          id,
		Name:        coerceText(raw["name"]),
		Description: coerceText(raw["description"]),
		Price:       coercePrice(raw["price"]),
		ImageRef:    pickImage(raw),
	}, nil
}

// NormalizeAll normalizes records in order, skipping the ones that fail.
// The returned errors are *MalformedRecordError values carrying the index of
// each skipped record.
func NormalizeAll(raws []model.RawProduct) ([]model.Product, []error) {
	products := make([]model.Product, 0, len(raws))
	var errs []error
	for i, raw := range raws {
		p, err := Normalize(raw)
		if err != nil {
			if mre, ok := err.(*MalformedRecordError); ok {
				mre.Index = i
			}
			errs = append(errs, err)
			continue
		}
		products = append(products, p)
	}
	return products, errs
}

func malformed(field, reason string) *MalformedRecordError {
	return &MalformedRecordError{Index: -1, Field: field, Reason: reason}
}

func coerceID(v any) (int64, error) {
	switch id := v.(type) {
	case nil:
		return 0, malformed("id", "missing")
	case int:
		return int64(id), nil
	case int32:
		return int64(id), nil
	case int64:
		return id, nil
	case uint32:
		return int64(id), nil
	case json.Number:
		if n, err := id.Int64(); err == nil {
			return n, nil
		}
		return integralFromString(id.String())
	case float64:
		return integral(id)
	case string:
		return integralFromString(id)
	default:
		return 0, malformed("id", "not a number")
	}
}

func integralFromString(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, malformed("id", "empty")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, malformed("id", strconv.Quote(s)+" is not a number")
	}
	return integral(f)
}

func integral(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, malformed("id", "not a finite number")
	}
	if f != math.Trunc(f) {
		return 0, malformed("id", strconv.FormatFloat(f, 'f', -1, 64)+" is not an integer")
	}
	// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
	if f >= -math.MinInt64 || f < math.MinInt64 {
		return 0, malformed("id", "out of range")
	}
	return int64(f), nil
}

// coercePrice never fails: anything that does not yield a finite,
// non-negative number becomes 0.
func coercePrice(v any) float64 {
	var f float64
	switch p := v.(type) {
	case string:
		f = parseLeadingDecimal(p)
	case json.Number:
		f = parseLeadingDecimal(p.String())
	case float64:
		f = p
	case float32:
		f = float64(p)
	case int:
		f = float64(p)
	case int64:
		f = float64(p)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// parseLeadingDecimal reads the longest decimal prefix after leading
// whitespace, so "12.50 LKR" is 12.5 and "N/A" is 0.
func parseLeadingDecimal(s string) float64 {
	m := leadingDecimal.FindString(strings.TrimLeft(s, " \t\r\n"))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

func coerceText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func pickImage(raw model.RawProduct) string {
	for _, field := range []string{fieldImageURL, fieldImage} {
		if s, ok := raw[field].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
