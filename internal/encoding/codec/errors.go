package codec

import (
	"fmt"

	"github.com/gssio/gss/internal/value"
)

// InvalidShapeError is returned when a document's shape is not supported by
// the target format, e.g. a sequence given to a format that only holds a
// single record.
type InvalidShapeError struct {
	Type     string   // native type of the offending document
	Expected []string // accepted kinds
	Message  string   // overrides the default message when set
}

func (e *InvalidShapeError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("type %q is of invalid kind, expecting one of %q", e.Type, e.Expected)
}

// RecordKinds are the kinds accepted by formats that hold a single record.
var RecordKinds = []string{"map", "struct"}

// RequireRecord fails with an InvalidShapeError when doc is a sequence.
func RequireRecord(doc value.Document) error {
	if doc.IsSequence() {
		return &InvalidShapeError{Type: doc.NativeType(), Expected: RecordKinds}
	}
	return nil
}
