package jni

import (
	"testing"

	"github.com/benn-herrera/jnihgen/model"
)

func method(name, ret string, params ...string) *model.MethodDecl {
	m := &model.MethodDecl{
		Name:      name,
		Returns:   model.MustParseType(ret),
		Modifiers: model.Modifiers{model.ModNative},
	}
	for _, p := range params {
		m.Parameters = append(m.Parameters, model.ParameterDecl{Type: model.MustParseType(p)})
	}
	return m
}

func TestDescriptor(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"void", "V"},
		{"boolean", "Z"},
		{"byte", "B"},
		{"char", "C"},
		{"short", "S"},
		{"int", "I"},
		{"long", "J"},
		{"float", "F"},
		{"double", "D"},
		{"int[][]", "[[I"},
		{"java.lang.String", "Ljava/lang/String;"},
		{"java.lang.Object[]", "[Ljava/lang/Object;"},
		{"com.example.Outer$Inner", "Lcom/example/Outer$Inner;"},
	}
	for _, tt := range tests {
		if got := Descriptor(model.MustParseType(tt.input)); got != tt.want {
			t.Errorf("Descriptor(%s) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMethodSignature(t *testing.T) {
	m := method("f", "long", "int", "java.lang.String[]", "double")
	if got := MethodSignature(m); got != "(I[Ljava/lang/String;D)J" {
		t.Errorf("MethodSignature = %q", got)
	}
	if got := ParameterSignature(m); got != "I[Ljava/lang/String;D" {
		t.Errorf("ParameterSignature = %q", got)
	}
	if got := MethodSignature(method("g", "void")); got != "()V" {
		t.Errorf("empty MethodSignature = %q", got)
	}
}

func TestDescriptor_PanicsOnZeroType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a type without a kind")
		}
	}()
	Descriptor(model.TypeRef{})
}

type throwables map[string]bool

func (s throwables) IsAssignable(from, to string) bool {
	return from == to || (to == model.JavaLangThrowable && s[from])
}

func TestCType(t *testing.T) {
	hier := throwables{"java.lang.RuntimeException": true}
	tests := []struct {
		input string
		types Assignability
		want  string
	}{
		{"void", nil, "void"},
		{"boolean", nil, "jboolean"},
		{"long", nil, "jlong"},
		{"int[]", nil, "jintArray"},
		{"double[]", nil, "jdoubleArray"},
		{"int[][]", nil, "jobjectArray"},
		{"java.lang.String[]", nil, "jobjectArray"},
		{"java.lang.String", nil, "jstring"},
		{"java.lang.Class", nil, "jclass"},
		{"java.lang.Throwable", nil, "jthrowable"},
		{"java.lang.Object", nil, "jobject"},
		{"java.lang.RuntimeException", Nominal, "jobject"},
		{"java.lang.RuntimeException", hier, "jthrowable"},
	}
	for _, tt := range tests {
		if got := CType(model.MustParseType(tt.input), tt.types); got != tt.want {
			t.Errorf("CType(%s) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestResolveSymbols(t *testing.T) {
	c := &model.ClassDecl{
		Name: "com.example.Foo",
		Methods: []model.MethodDecl{
			*method("bar", "void", "int"),
			*method("baz", "void", "int"),
			*method("baz", "void", "java.lang.String"),
			{Name: "baz", Returns: model.Prim(model.Void)}, // not native, does not count
		},
	}
	syms := ResolveSymbols(c)
	want := []string{
		"Java_com_example_Foo_bar",
		"Java_com_example_Foo_baz__I",
		"Java_com_example_Foo_baz__Ljava_lang_String_2",
	}
	if len(syms) != len(want) {
		t.Fatalf("got %d symbols, want %d", len(syms), len(want))
	}
	for i, s := range syms {
		if s.Name != want[i] {
			t.Errorf("symbol %d = %q, want %q", i, s.Name, want[i])
		}
	}
	if syms[0].Overloaded || !syms[1].Overloaded {
		t.Error("overload flags wrong")
	}
	if syms[0].Signature != "(I)V" {
		t.Errorf("signature = %q", syms[0].Signature)
	}
}

func TestResolveSymbols_NoOverloadWhenOnlyOneNative(t *testing.T) {
	c := &model.ClassDecl{
		Name: "com.example.Foo",
		Methods: []model.MethodDecl{
			*method("bar", "void", "int"),
			{Name: "bar", Returns: model.Prim(model.Void)},
		},
	}
	syms := ResolveSymbols(c)
	if len(syms) != 1 || syms[0].Name != "Java_com_example_Foo_bar" {
		t.Errorf("got %+v", syms)
	}
}

func TestRegistrationPrefix(t *testing.T) {
	outer := &model.ClassDecl{Name: "com.example.Outer"}
	inner := &model.ClassDecl{Name: "com.example.Outer.Inner", Enclosing: "com.example.Outer", Scope: model.ScopeNested, Outer: outer}
	if got := RegistrationPrefix(inner); got != "OUTER_INNER" {
		t.Errorf("RegistrationPrefix = %q", got)
	}
	if got := RegistrationPrefix(outer); got != "OUTER" {
		t.Errorf("RegistrationPrefix = %q", got)
	}
	if got := ClassMacroName(inner); got != "com_example_Outer_Inner" {
		t.Errorf("ClassMacroName = %q", got)
	}
}
