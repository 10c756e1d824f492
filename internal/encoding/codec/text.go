package codec

import (
	"github.com/spf13/cast"

	"github.com/gssio/gss/internal/value"
)

// Text renders a value as plain text for the line and table formats.
// Null renders as the empty string and containers render as compact JSON.
func Text(v value.Value) (string, error) {
	switch v.Kind() {
	case value.KindNull:
		return "", nil
	case value.KindString:
		s, _ := v.Str()
		return s, nil
	case value.KindNumber:
		if v.IsInteger() {
			return cast.ToStringE(v.Int64())
		}
		return cast.ToStringE(v.Float64())
	case value.KindBool:
		b, _ := v.Boolean()
		return cast.ToStringE(b)
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
