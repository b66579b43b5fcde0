package gen

import (
	"math"
	"strings"
	"testing"

	"github.com/benn-herrera/jnihgen/model"
)

func TestConstantLiteral(t *testing.T) {
	tests := []struct {
		field   model.FieldDecl
		windows bool
		want    string
	}{
		{constant("T", "boolean", true), false, "1L"},
		{constant("F", "boolean", false), false, "0L"},
		{constant("B", "byte", -3), false, "-3L"},
		{constant("S", "short", 300), false, "300L"},
		{constant("I", "int", 100), false, "100L"},
		{constant("L", "long", 100), false, "100LL"},
		{constant("L", "long", 100), true, "100i64"},
		{constant("L", "long", int64(math.MinInt64)), false, "-9223372036854775808LL"},
		{constant("C", "char", "A"), false, "65L"},
		{constant("C", "char", 0x4e2d), false, "20013L"},
		{constant("F", "float", 0.1), false, "0.1f"},
		{constant("F", "float", 1.0), false, "1.0f"},
		{constant("F", "float", 1e10), false, "1.0E10f"},
		{constant("F", "float", "Infinity"), false, "Inff"},
		{constant("F", "float", "-Infinity"), false, "-Inff"},
		{constant("D", "double", 2.5), false, "2.5"},
		{constant("D", "double", 1e-4), false, "1.0E-4"},
		{constant("D", "double", math.Inf(1)), false, "InfD"},
		{constant("D", "double", math.Inf(-1)), false, "-InfD"},
	}
	for _, tt := range tests {
		got, ok := ConstantLiteral(&tt.field, tt.windows)
		if !ok {
			t.Errorf("%s %v: not emitted", tt.field.Type, tt.field.Value)
			continue
		}
		if got != tt.want {
			t.Errorf("%s %v (windows=%v) = %q, want %q", tt.field.Type, tt.field.Value, tt.windows, got, tt.want)
		}
	}
}

func TestConstantLiteral_Skipped(t *testing.T) {
	for _, f := range []model.FieldDecl{
		constant("S", "java.lang.String", "hello"),
		constant("I", "int", "not a number"),
		constant("B", "boolean", 1),
		constant("C", "char", "AB"),
	} {
		if got, ok := ConstantLiteral(&f, false); ok {
			t.Errorf("%s %v: expected skip, got %q", f.Type, f.Value, got)
		}
	}
}

func TestJavaFloatString(t *testing.T) {
	tests := []struct {
		v       float64
		bitSize int
		want    string
	}{
		{1, 64, "1.0"},
		{0.001, 64, "0.001"},
		{123456.7, 64, "123456.7"},
		{9999999, 64, "9999999.0"},
		{1e7, 64, "1.0E7"},
		{1.5e-7, 64, "1.5E-7"},
		{-2.5, 64, "-2.5"},
		{math.Copysign(0, -1), 64, "-0.0"},
		{0, 64, "0.0"},
		{math.NaN(), 64, "NaN"},
		{float64(float32(0.1)), 32, "0.1"},
		{float64(float32(math.MaxFloat32)), 32, "3.4028235E38"},
	}
	for _, tt := range tests {
		if got := JavaFloatString(tt.v, tt.bitSize); got != tt.want {
			t.Errorf("JavaFloatString(%v, %d) = %q, want %q", tt.v, tt.bitSize, got, tt.want)
		}
	}
}

func TestWriteHeader_Constants(t *testing.T) {
	c := fooClass(native("bar", "void"))
	c.Fields = []model.FieldDecl{
		constant("MAX", "int", 100),
		{Name: "counter", Type: model.Prim(model.Int), Modifiers: model.Modifiers{model.ModStatic}, Value: 5},
		constant("NAME", "java.lang.String", "x"),
	}
	got := WriteHeader(c, nil, false)

	if !strings.Contains(got, "#undef com_example_Foo_MAX\n#define com_example_Foo_MAX 100L\n") {
		t.Errorf("missing constant macro:\n%s", got)
	}
	if strings.Contains(got, "counter") {
		t.Error("non-final field must not be emitted")
	}
	if strings.Contains(got, "NAME") {
		t.Error("string constants are not emitted")
	}
	// Constants precede prototypes.
	if strings.Index(got, "#define com_example_Foo_MAX") > strings.Index(got, "JNIEXPORT") {
		t.Error("constants must come before prototypes")
	}
}

func TestWriteHeader_InheritedConstants(t *testing.T) {
	root := &model.ClassDecl{Name: "com.example.Root", Fields: []model.FieldDecl{constant("A", "int", 1)}}
	base := &model.ClassDecl{Name: "com.example.Base", Superclass: root, Fields: []model.FieldDecl{constant("B", "int", 2)}}
	derived := &model.ClassDecl{Name: "com.example.Derived", Superclass: base, Fields: []model.FieldDecl{constant("C", "long", 3)}}

	got := WriteHeader(derived, nil, true)
	a := strings.Index(got, "#define com_example_Derived_A 1L")
	b := strings.Index(got, "#define com_example_Derived_B 2L")
	c := strings.Index(got, "#define com_example_Derived_C 3i64")
	if a < 0 || b < 0 || c < 0 {
		t.Fatalf("missing inherited constants:\n%s", got)
	}
	if !(a < b && b < c) {
		t.Error("constants must be emitted from the root class down")
	}
	if strings.Contains(got, "com_example_Base_") || strings.Contains(got, "com_example_Root_") {
		t.Error("macro names must use the most-derived class")
	}
}
