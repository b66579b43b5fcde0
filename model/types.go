package model

import (
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// TypeKind discriminates the TypeRef variants.
type TypeKind int

const (
	KindPrimitive TypeKind = iota + 1
	KindArray
	KindDeclared
)

// PrimitiveKind enumerates the JVM primitive types plus void.
type PrimitiveKind int

const (
	Void PrimitiveKind = iota + 1
	Boolean
	Byte
	Char
	Short
	Int
	Long
	Float
	Double
)

var primitiveNames = map[PrimitiveKind]string{
	Void:    "void",
	Boolean: "boolean",
	Byte:    "byte",
	Char:    "char",
	Short:   "short",
	Int:     "int",
	Long:    "long",
	Float:   "float",
	Double:  "double",
}

var primitivesByName = func() map[string]PrimitiveKind {
	m := make(map[string]PrimitiveKind, len(primitiveNames))
	for k, v := range primitiveNames {
		m[v] = k
	}
	return m
}()

func (k PrimitiveKind) String() string {
	if s, ok := primitiveNames[k]; ok {
		return s
	}
	return fmt.Sprintf("PrimitiveKind(%d)", int(k))
}

// Well-known declared types with dedicated JNI C type names.
const (
	JavaLangString    = "java.lang.String"
	JavaLangThrowable = "java.lang.Throwable"
	JavaLangClass     = "java.lang.Class"
	JavaLangObject    = "java.lang.Object"
)

// TypeRef is an erased Java type: a primitive (or void), an array, or a
// declared class/interface referenced by qualified name.
//
// In YAML a TypeRef is written the way Java source spells it:
// "int", "byte[]", "java.lang.String[][]".
type TypeRef struct {
	Kind      TypeKind
	Primitive PrimitiveKind
	Component *TypeRef
	Name      string
}

// Prim returns the primitive TypeRef for k.
func Prim(k PrimitiveKind) TypeRef {
	return TypeRef{Kind: KindPrimitive, Primitive: k}
}

// ArrayOf returns an array TypeRef with the given component.
func ArrayOf(component TypeRef) TypeRef {
	c := component
	return TypeRef{Kind: KindArray, Component: &c}
}

// Declared returns a declared TypeRef for a qualified class name.
func Declared(qualifiedName string) TypeRef {
	return TypeRef{Kind: KindDeclared, Name: qualifiedName}
}

// IsZero reports whether t was never set.
func (t TypeRef) IsZero() bool {
	return t.Kind == 0
}

// IsPrimitive is true for the eight value types. Void is not a value type.
func (t TypeRef) IsPrimitive() bool {
	return t.Kind == KindPrimitive && t.Primitive != Void
}

// IsVoid reports whether t is the void return type.
func (t TypeRef) IsVoid() bool {
	return t.Kind == KindPrimitive && t.Primitive == Void
}

// IsReference is true for arrays and declared types.
func (t TypeRef) IsReference() bool {
	return t.Kind == KindArray || t.Kind == KindDeclared
}

// String renders t in Java source spelling.
func (t TypeRef) String() string {
	switch t.Kind {
	case KindPrimitive:
		return t.Primitive.String()
	case KindArray:
		if t.Component == nil {
			return "?[]"
		}
		return t.Component.String() + "[]"
	case KindDeclared:
		return t.Name
	default:
		return "<invalid>"
	}
}

// Equal reports structural equality.
func (t TypeRef) Equal(o TypeRef) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindPrimitive:
		return t.Primitive == o.Primitive
	case KindArray:
		if t.Component == nil || o.Component == nil {
			return t.Component == o.Component
		}
		return t.Component.Equal(*o.Component)
	case KindDeclared:
		return t.Name == o.Name
	}
	return true
}

// ParseType parses a Java source spelling of an erased type.
// Generic arguments are rejected since declarations must already be erased.
func ParseType(s string) (TypeRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeRef{}, fmt.Errorf("empty type")
	}

	dims := 0
	for strings.HasSuffix(s, "[]") {
		dims++
		s = strings.TrimSpace(strings.TrimSuffix(s, "[]"))
	}

	var base TypeRef
	if k, ok := primitivesByName[s]; ok {
		if k == Void && dims > 0 {
			return TypeRef{}, fmt.Errorf("array of void")
		}
		base = Prim(k)
	} else {
		if !IsQualifiedName(s) {
			return TypeRef{}, fmt.Errorf("invalid type name %q", s)
		}
		base = Declared(s)
	}

	for i := 0; i < dims; i++ {
		base = ArrayOf(base)
	}
	return base, nil
}

// MustParseType is ParseType for literals known to be valid.
func MustParseType(s string) TypeRef {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// IsQualifiedName reports whether s is a dot-separated sequence of Java identifiers.
func IsQualifiedName(s string) bool {
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(s, ".") {
		if !IsIdentifier(seg) {
			return false
		}
	}
	return true
}

// IsIdentifier reports whether s is a legal Java identifier (letters, digits, '_' and '$').
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func (t TypeRef) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func (t *TypeRef) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("line %d: type must be a string: %w", value.Line, err)
	}
	parsed, err := ParseType(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*t = parsed
	return nil
}
