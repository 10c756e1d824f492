package value

// Document is the top-level shape every codec reads and writes:
// either a single Record or a Sequence of Records.
type Document struct {
	record   *Record
	records  []*Record
	sequence bool
}

// RecordDocument returns a document holding a single record.
func RecordDocument(r *Record) Document {
	if r == nil {
		r = NewRecord()
	}
	return Document{record: r}
}

// SequenceDocument returns a document holding a sequence of records.
func SequenceDocument(rs ...*Record) Document {
	records := make([]*Record, 0, len(rs))
	for _, r := range rs {
		if r == nil {
			r = NewRecord()
		}
		records = append(records, r)
	}
	return Document{records: records, sequence: true}
}

// IsSequence reports whether the document is a sequence of records.
func (d Document) IsSequence() bool { return d.sequence }

// Record returns the single record, or nil for a sequence.
func (d Document) Record() *Record {
	if d.sequence {
		return nil
	}
	if d.record == nil {
		return NewRecord()
	}
	return d.record
}

// Records returns the records of the document. A single-record document
// yields a one-element slice.
func (d Document) Records() []*Record {
	if d.sequence {
		return d.records
	}
	return []*Record{d.Record()}
}

// Value returns the document as a Value.
func (d Document) Value() Value {
	if !d.sequence {
		return RecordOf(d.Record())
	}
	items := make([]Value, len(d.records))
	for i, r := range d.records {
		items[i] = RecordOf(r)
	}
	return Sequence(items...)
}

// SortKeys returns a copy of the document with keys sorted at every level.
func (d Document) SortKeys(reversed bool) Document {
	if !d.sequence {
		return RecordDocument(d.Record().SortKeys(reversed))
	}
	out := make([]*Record, len(d.records))
	for i, r := range d.records {
		out[i] = r.SortKeys(reversed)
	}
	return SequenceDocument(out...)
}

// Equal reports whether two documents have the same shape and content.
func (d Document) Equal(o Document) bool {
	return d.Value().Equal(o.Value())
}

// NativeType names the Go type a document's native form has. It is used
// when reporting shape errors.
func (d Document) NativeType() string {
	if d.sequence {
		return "[]interface {}"
	}
	return "map[string]interface {}"
}

// FromValue builds a document from a record value or a sequence of record
// values. ok is false for any other shape.
func FromValue(v Value) (Document, bool) {
	switch v.Kind() {
	case KindRecord:
		return RecordDocument(v.Record()), true
	case KindSequence:
		records := make([]*Record, 0, len(v.Items()))
		for _, item := range v.Items() {
			if item.Kind() != KindRecord {
				return Document{}, false
			}
			records = append(records, item.Record())
		}
		return SequenceDocument(records...), true
	}
	return Document{}, false
}
