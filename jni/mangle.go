package jni

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// EncodeContext selects the escaping table used by Encode.
type EncodeContext int

const (
	// EncodeClass is used for class names in macro and guard names.
	EncodeClass EncodeContext = iota
	// EncodeJNI is the JNI specification's exported-symbol mangling.
	EncodeJNI
	// EncodeFieldStub is used for field and method names inside macro names.
	EncodeFieldStub
	// EncodeSignature keeps printable ASCII as-is.
	EncodeSignature
)

func (c EncodeContext) String() string {
	switch c {
	case EncodeClass:
		return "class"
	case EncodeJNI:
		return "jni"
	case EncodeFieldStub:
		return "fieldstub"
	case EncodeSignature:
		return "signature"
	default:
		return "unknown"
	}
}

// ParseEncodeContext maps a context name back to its value.
func ParseEncodeContext(name string) (EncodeContext, error) {
	switch strings.ToLower(name) {
	case "class":
		return EncodeClass, nil
	case "jni":
		return EncodeJNI, nil
	case "fieldstub":
		return EncodeFieldStub, nil
	case "signature":
		return EncodeSignature, nil
	}
	return 0, fmt.Errorf("unknown encode context %q (want class, jni, fieldstub or signature)", name)
}

// Encode escapes name into a C identifier fragment. Input is processed as
// UTF-16 code units, the unit Java identifiers are made of.
func Encode(name string, ctx EncodeContext) string {
	var b strings.Builder
	b.Grow(len(name) + 8)
	for _, ch := range utf16.Encode([]rune(name)) {
		if isAlnum(ch) {
			b.WriteByte(byte(ch))
			continue
		}
		switch ctx {
		case EncodeClass:
			switch ch {
			case '.', '_':
				b.WriteByte('_')
			case '$':
				b.WriteString("__")
			default:
				b.WriteString(EncodeChar(ch))
			}
		case EncodeJNI:
			switch ch {
			case '/', '.':
				b.WriteByte('_')
			case '_':
				b.WriteString("_1")
			case ';':
				b.WriteString("_2")
			case '[':
				b.WriteString("_3")
			default:
				b.WriteString(EncodeChar(ch))
			}
		case EncodeSignature:
			if isPrint(ch) {
				b.WriteByte(byte(ch))
			} else {
				b.WriteString(EncodeChar(ch))
			}
		case EncodeFieldStub:
			if ch == '_' {
				b.WriteByte('_')
			} else {
				b.WriteString(EncodeChar(ch))
			}
		default:
			b.WriteString(EncodeChar(ch))
		}
	}
	return b.String()
}

// EncodeChar returns the generic escape for a UTF-16 code unit:
// '_' followed by exactly five lowercase hex digits.
func EncodeChar(ch uint16) string {
	return fmt.Sprintf("_%05x", ch)
}

// DecodeEscape reverses EncodeChar. tok must be a full six-character token.
func DecodeEscape(tok string) (uint16, error) {
	if len(tok) != 6 || tok[0] != '_' {
		return 0, fmt.Errorf("malformed escape %q", tok)
	}
	for i := 1; i < 6; i++ {
		c := tok[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return 0, fmt.Errorf("malformed escape %q", tok)
		}
	}
	v, err := strconv.ParseUint(tok[1:], 16, 32)
	if err != nil || v > 0xffff {
		return 0, fmt.Errorf("escape %q out of UTF-16 range", tok)
	}
	return uint16(v), nil
}

// ASCII only: non-ASCII letters are always escaped.
func isAlnum(ch uint16) bool {
	return ch <= 0x7f &&
		((ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9'))
}

func isPrint(ch uint16) bool {
	return ch >= 0x20 && ch <= 0x7e
}
