package gen

import (
	"strings"
	"testing"

	"github.com/benn-herrera/jnihgen/model"
)

func native(name, ret string, params ...string) model.MethodDecl {
	m := model.MethodDecl{
		Name:      name,
		Returns:   model.MustParseType(ret),
		Modifiers: model.Modifiers{model.ModNative},
	}
	for i, p := range params {
		m.Parameters = append(m.Parameters, model.ParameterDecl{
			Name: string(rune('a' + i)),
			Type: model.MustParseType(p),
		})
	}
	return m
}

func staticNative(name, ret string, params ...string) model.MethodDecl {
	m := native(name, ret, params...)
	m.Modifiers = append(m.Modifiers, model.ModStatic)
	return m
}

func constant(name, typ string, value any) model.FieldDecl {
	return model.FieldDecl{
		Name:      name,
		Type:      model.MustParseType(typ),
		Modifiers: model.Modifiers{model.ModPublic, model.ModStatic, model.ModFinal},
		Value:     value,
	}
}

func fooClass(methods ...model.MethodDecl) *model.ClassDecl {
	return &model.ClassDecl{Name: "com.example.Foo", Scope: model.ScopeTopLevel, Methods: methods}
}

func TestWriteHeader_Golden(t *testing.T) {
	c := fooClass(native("bar", "int", "int"))

	want := `/* DO NOT EDIT THIS FILE - it is machine generated */
#include <jni.h>

#ifndef _INCLUDED_COM_EXAMPLE_FOO_METHODS
#define _INCLUDED_COM_EXAMPLE_FOO_METHODS
#ifdef __cplusplus
extern "C" {
#endif
/*
 * Class:     com_example_Foo
 * Method:    bar
 * Signature: (I)I
 */
JNIEXPORT jint JNICALL Java_com_example_Foo_bar
  (JNIEnv *env, jobject self, jint a);

#ifdef __cplusplus
}
#endif
#endif
`
	if got := WriteHeader(c, nil, false); got != want {
		t.Errorf("header mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestWriteHeader_StaticAndMissingParamNames(t *testing.T) {
	m := staticNative("bar", "void", "int", "java.lang.String")
	m.Parameters[0].Name = ""
	m.Parameters[1].Name = ""
	got := WriteHeader(fooClass(m), nil, false)

	if !strings.Contains(got, "JNIEXPORT void JNICALL Java_com_example_Foo_bar\n  (JNIEnv *env, jclass clazz, jint arg0, jstring arg1);") {
		t.Errorf("unexpected prototype:\n%s", got)
	}
}

func TestWriteHeader_Overloads(t *testing.T) {
	c := fooClass(
		native("foo", "void", "int"),
		native("foo", "void", "java.lang.String"),
		native("solo", "void"),
	)
	got := WriteHeader(c, nil, false)

	for _, sym := range []string{
		"Java_com_example_Foo_foo__I\n",
		"Java_com_example_Foo_foo__Ljava_lang_String_2\n",
		"Java_com_example_Foo_solo\n",
	} {
		if !strings.Contains(got, "JNICALL "+sym) {
			t.Errorf("missing symbol %q", sym)
		}
	}
	if strings.Contains(got, "Java_com_example_Foo_foo\n") {
		t.Error("bare name of an overloaded method must not be emitted")
	}
}

func TestWriteHeader_CriticalNative(t *testing.T) {
	m := staticNative("add", "int", "int", "int")
	m.CriticalNative = true
	empty := staticNative("tick", "void")
	empty.CriticalNative = true

	got := WriteHeader(fooClass(m, empty), nil, false)
	if !strings.Contains(got, "  (jint a, jint b);") {
		t.Errorf("critical native must omit env and class:\n%s", got)
	}
	if !strings.Contains(got, "Java_com_example_Foo_tick\n  (void);") {
		t.Errorf("empty critical native parameter list must be (void):\n%s", got)
	}
}

func TestWriteHeader_NoNatives(t *testing.T) {
	c := fooClass(model.MethodDecl{Name: "plain", Returns: model.Prim(model.Void)})
	got := WriteHeader(c, nil, false)
	if strings.Contains(got, "JNIEXPORT") {
		t.Errorf("expected no prototypes:\n%s", got)
	}
	if !strings.Contains(got, "#ifndef _INCLUDED_COM_EXAMPLE_FOO_METHODS") {
		t.Error("guard must still be emitted")
	}
}

func TestWriteHeader_Deterministic(t *testing.T) {
	c := fooClass(
		native("foo", "void", "int"),
		native("foo", "void", "long"),
		staticNative("registerNatives", "void"),
	)
	c.Fields = []model.FieldDecl{constant("A", "int", 1), constant("B", "long", 2)}

	first := WriteHeader(c, nil, false)
	for i := 0; i < 10; i++ {
		if got := WriteHeader(c, nil, false); got != first {
			t.Fatal("header output is not deterministic")
		}
	}
}

func TestGenerateClass(t *testing.T) {
	bad := native("bad", "int")
	bad.CriticalNative = true
	c := fooClass(bad, native("ok", "void"))

	a := GenerateClass(c, nil, false)
	if !strings.Contains(a.Header, "Java_com_example_Foo_bad") {
		t.Error("invalid methods are still emitted")
	}
	if !strings.Contains(a.Signatures, "FOO_ok__NAME") {
		t.Error("missing signature definitions")
	}
	if len(a.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", a.Diagnostics)
	}

	c.Scope = model.ScopeLocal
	if a := GenerateClass(c, nil, false); a.Header != "" || a.Signatures != "" || len(a.Diagnostics) != 0 {
		t.Errorf("local class should produce nothing, got %+v", a)
	}
}
