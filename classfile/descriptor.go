package classfile

import (
	"fmt"
	"strings"
)

// FieldType is a parsed field descriptor. Exactly one of BaseType and
// ClassName is set.
type FieldType struct {
	BaseType   byte   // descriptor letter: B C D F I J S Z, or V for a void return
	ClassName  string // internal name, e.g. "java/lang/String"
	ArrayDepth int
}

type MethodDescriptor struct {
	Parameters []FieldType
	ReturnType FieldType
}

func ParseFieldDescriptor(desc string) (FieldType, error) {
	ft, n, err := parseFieldType(desc, 0)
	if err != nil {
		return FieldType{}, err
	}
	if n != len(desc) || ft.BaseType == 'V' {
		return FieldType{}, fmt.Errorf("invalid field descriptor %q", desc)
	}
	return ft, nil
}

func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, fmt.Errorf("invalid method descriptor %q", desc)
	}

	md := &MethodDescriptor{}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		ft, n, err := parseFieldType(desc, i)
		if err != nil {
			return nil, err
		}
		if ft.BaseType == 'V' {
			return nil, fmt.Errorf("void parameter in %q", desc)
		}
		md.Parameters = append(md.Parameters, ft)
		i += n
	}
	if i >= len(desc) {
		return nil, fmt.Errorf("unterminated parameter list in %q", desc)
	}
	i++

	ret, n, err := parseFieldType(desc, i)
	if err != nil {
		return nil, err
	}
	if i+n != len(desc) || (ret.BaseType == 'V' && ret.ArrayDepth > 0) {
		return nil, fmt.Errorf("invalid return type in %q", desc)
	}
	md.ReturnType = ret
	return md, nil
}

func parseFieldType(desc string, start int) (FieldType, int, error) {
	var ft FieldType
	i := start
	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if i >= len(desc) {
		return FieldType{}, 0, fmt.Errorf("truncated descriptor %q", desc)
	}

	switch c := desc[i]; c {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 'V':
		ft.BaseType = c
		return ft, i - start + 1, nil
	case 'L':
		semicolon := strings.IndexByte(desc[i:], ';')
		if semicolon <= 1 {
			return FieldType{}, 0, fmt.Errorf("invalid class type in %q", desc)
		}
		ft.ClassName = desc[i+1 : i+semicolon]
		return ft, i - start + semicolon + 1, nil
	default:
		return FieldType{}, 0, fmt.Errorf("unexpected %q in descriptor %q", c, desc)
	}
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}
