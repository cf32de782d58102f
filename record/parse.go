package record

import (
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// Parse reads a single JSON object into a RawRecord, keeping the key order
// of the input. Strings are unquoted, other values are rendered like Python
// would print them, so 2021 becomes "2021", true becomes "True" and null
// becomes "None". Array elements are coerced the same way.
func Parse(p []byte) (RawRecord, error) {
	if !utf8.Valid(p) {
		return RawRecord{}, &MalformedRecordError{Reason: "invalid utf-8"}
	}
	if !gjson.ValidBytes(p) {
		return RawRecord{}, &MalformedRecordError{Reason: "invalid json"}
	}
	doc := gjson.ParseBytes(p)
	if !doc.IsObject() {
		return RawRecord{}, &MalformedRecordError{Reason: "not a json object"}
	}
	var r RawRecord
	doc.ForEach(func(key, value gjson.Result) bool {
		r.Set(key.String(), valueOf(value))
		return true
	})
	return r, nil
}

func valueOf(v gjson.Result) Value {
	if !v.IsArray() {
		return Scalar(pyStr(v))
	}
	elems := v.Array()
	ss := make([]string, len(elems))
	for i, e := range elems {
		ss[i] = pyStr(e)
	}
	return Sequence(ss...)
}
