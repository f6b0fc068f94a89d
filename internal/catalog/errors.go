package catalog

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord matches any *MalformedRecordError via errors.Is.
var ErrMalformedRecord = errors.New("catalog: malformed product record")

// FetchError reports a failed catalog read: a transport failure, a non-2xx
// response, or a body that is not a product list.
type FetchError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog: %s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// MalformedRecordError reports a raw record that cannot become a Product.
// Index is the record's position in the response array, or -1 for a single
// record.
type MalformedRecordError struct {
	Index  int
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("catalog: malformed record %d: %s: %s", e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("catalog: malformed record: %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrMalformedRecord) match.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
