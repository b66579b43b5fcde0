package gen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/benn-herrera/jnihgen/jni"
	"github.com/benn-herrera/jnihgen/model"
)

// writeStatics emits #undef/#define pairs for every compile-time constant visible
// in c, walking the superclass chain from the root down to c itself. Macro names
// always use the most-derived class.
func writeStatics(b *strings.Builder, c *model.ClassDecl, windows bool) {
	cname := jni.ClassMacroName(c)
	chain := c.Ancestry()
	for i := len(chain) - 1; i >= 0; i-- {
		for j := range chain[i].Fields {
			f := &chain[i].Fields[j]
			if !f.IsConstant() {
				continue
			}
			value, ok := ConstantLiteral(f, windows)
			if !ok {
				continue
			}
			macro := cname + "_" + jni.Encode(f.Name, jni.EncodeFieldStub)
			fmt.Fprintf(b, "#undef %s\n", macro)
			fmt.Fprintf(b, "#define %s %s\n", macro, value)
		}
	}
}

// ConstantLiteral formats the constant value of f as a C literal. It returns
// false when the field type is not one of the eight primitive kinds or the value
// cannot be read as that kind.
func ConstantLiteral(f *model.FieldDecl, windows bool) (string, bool) {
	if f.Type.Kind != model.KindPrimitive {
		return "", false
	}
	switch f.Type.Primitive {
	case model.Boolean:
		v, ok := f.Value.(bool)
		if !ok {
			return "", false
		}
		if v {
			return "1L", true
		}
		return "0L", true
	case model.Byte, model.Short, model.Int:
		v, ok := asInt(f.Value)
		if !ok {
			return "", false
		}
		return strconv.FormatInt(v, 10) + "L", true
	case model.Long:
		v, ok := asInt(f.Value)
		if !ok {
			return "", false
		}
		// Visual C++ takes the i64 suffix, not LL.
		if windows {
			return strconv.FormatInt(v, 10) + "i64", true
		}
		return strconv.FormatInt(v, 10) + "LL", true
	case model.Char:
		v, ok := asChar(f.Value)
		if !ok {
			return "", false
		}
		return strconv.FormatUint(uint64(v), 10) + "L", true
	case model.Float:
		v, ok := asFloat(f.Value)
		if !ok {
			return "", false
		}
		fv := float32(v)
		if math.IsInf(float64(fv), 0) {
			if fv < 0 {
				return "-Inff", true
			}
			return "Inff", true
		}
		return JavaFloatString(float64(fv), 32) + "f", true
	case model.Double:
		v, ok := asFloat(f.Value)
		if !ok {
			return "", false
		}
		if math.IsInf(v, 0) {
			if v < 0 {
				return "-InfD", true
			}
			return "InfD", true
		}
		return JavaFloatString(v, 64), true
	default:
		return "", false
	}
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

// asChar accepts a code unit number or a string holding exactly one UTF-16 unit.
func asChar(v any) (uint16, bool) {
	if s, ok := v.(string); ok {
		units := utf16.Encode([]rune(s))
		if len(units) != 1 {
			return 0, false
		}
		return units[0], true
	}
	n, ok := asInt(v)
	if !ok {
		return 0, false
	}
	// Java narrows char constants to 16 bits.
	return uint16(n & 0xffff), true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case string:
		switch n {
		case "Infinity", "+Infinity":
			return math.Inf(1), true
		case "-Infinity":
			return math.Inf(-1), true
		case "NaN":
			return math.NaN(), true
		}
		return 0, false
	}
	if i, ok := asInt(v); ok {
		return float64(i), true
	}
	return 0, false
}

// JavaFloatString renders v the way Java's Float.toString (bitSize 32) or
// Double.toString (bitSize 64) does: shortest round-trip digits, at least one
// fractional digit, and computerized scientific notation ("1.0E10") outside
// [1e-3, 1e7).
func JavaFloatString(v float64, bitSize int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	// Shortest digits in the form d.ddddde±XX.
	e := strconv.FormatFloat(v, 'e', -1, bitSize)
	mant, expStr, _ := strings.Cut(e, "e")
	exp, _ := strconv.Atoi(expStr)
	digits := strings.Replace(mant, ".", "", 1)

	if v >= 1e-3 && v < 1e7 {
		var b strings.Builder
		b.WriteString(sign)
		if exp < 0 {
			b.WriteString("0.")
			b.WriteString(strings.Repeat("0", -exp-1))
			b.WriteString(digits)
			return b.String()
		}
		intLen := exp + 1
		if len(digits) <= intLen {
			b.WriteString(digits)
			b.WriteString(strings.Repeat("0", intLen-len(digits)))
			b.WriteString(".0")
			return b.String()
		}
		b.WriteString(digits[:intLen])
		b.WriteByte('.')
		b.WriteString(digits[intLen:])
		return b.String()
	}

	frac := digits[1:]
	if frac == "" {
		frac = "0"
	}
	return sign + digits[:1] + "." + frac + "E" + strconv.Itoa(exp)
}
