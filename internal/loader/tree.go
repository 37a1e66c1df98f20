package loader

import (
	"encoding/base64"

	"github.com/dshills/confstore/internal/variant"
)

// scalar converts v to a value that TOML and YAML encoders accept. Chars
// become one-character strings and buffers become base64, matching the
// JSON writer. Pointers have no portable form and report false.
func scalar(v variant.Variant) (any, bool) {
	switch v.Kind() {
	case variant.KindPointer:
		return nil, false
	case variant.KindNone:
		return nil, true
	case variant.KindChar:
		return string(rune(v.AsChar())), true
	case variant.KindBuffer:
		return base64.StdEncoding.EncodeToString(v.AsBytes()), true
	default:
		return v.Interface(), true
	}
}
