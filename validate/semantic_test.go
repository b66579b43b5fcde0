package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/benn-herrera/jnihgen/model"
)

func nativeMethod(name string, ret string, params ...string) model.MethodDecl {
	m := model.MethodDecl{
		Name:      name,
		Returns:   model.MustParseType(ret),
		Modifiers: model.Modifiers{model.ModNative},
	}
	for _, p := range params {
		m.Parameters = append(m.Parameters, model.ParameterDecl{Type: model.MustParseType(p)})
	}
	return m
}

func staticNative(name string, ret string, params ...string) model.MethodDecl {
	m := nativeMethod(name, ret, params...)
	m.Modifiers = append(m.Modifiers, model.ModStatic)
	return m
}

func fooClass(methods ...model.MethodDecl) *model.ClassDecl {
	return &model.ClassDecl{Name: "com.example.Foo", Scope: model.ScopeTopLevel, Methods: methods}
}

func TestNativeMethod(t *testing.T) {
	fast := nativeMethod("f", "int")
	fast.FastNative = true

	both := staticNative("b", "int")
	both.FastNative = true
	both.CriticalNative = true

	critInstance := nativeMethod("ci", "int")
	critInstance.CriticalNative = true

	critRet := staticNative("cr", "java.lang.String")
	critRet.CriticalNative = true

	critParam := staticNative("cp", "int", "int", "int[]")
	critParam.CriticalNative = true

	critOK := staticNative("ok", "long", "int", "double")
	critOK.CriticalNative = true

	critVoid := staticNative("v", "void")
	critVoid.CriticalNative = true

	tests := []struct {
		name    string
		method  model.MethodDecl
		outcome Outcome
		message string
	}{
		{"plain", nativeMethod("plain", "void", "java.lang.String"), Valid, ""},
		{"fast native", fast, Valid, ""},
		{"both annotations", both, Invalid, "but not both"},
		{"critical instance", critInstance, Invalid, "must be static"},
		{"critical reference return", critRet, Invalid, "primitive return type"},
		{"critical array param", critParam, Invalid, "primitive parameter types"},
		{"critical valid", critOK, Valid, ""},
		{"critical void", critVoid, Valid, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fooClass(tt.method)
			result := &Result{}
			got, err := NativeMethod(c, &c.Methods[0], result)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.outcome {
				t.Errorf("outcome = %s, want %s", got, tt.outcome)
			}
			if tt.outcome == Valid {
				if len(result.Diagnostics) != 0 {
					t.Errorf("expected no diagnostics, got %v", result.Diagnostics)
				}
				return
			}
			if len(result.Diagnostics) != 1 {
				t.Fatalf("expected exactly 1 diagnostic, got %d: %v", len(result.Diagnostics), result.Diagnostics)
			}
			d := result.Diagnostics[0]
			if d.Severity != SeverityError {
				t.Errorf("severity = %s, want error", d.Severity)
			}
			if !strings.Contains(d.Message, tt.message) {
				t.Errorf("message %q does not contain %q", d.Message, tt.message)
			}
			if !strings.Contains(d.Message, "com.example.Foo") {
				t.Errorf("message %q does not name the class", d.Message)
			}
		})
	}
}

func TestNativeMethod_FirstViolationOnly(t *testing.T) {
	// Instance method with a reference return and reference param violates three rules.
	m := nativeMethod("bad", "java.lang.Object", "java.lang.String")
	m.CriticalNative = true
	c := fooClass(m)

	result := &Result{}
	NativeMethod(c, &c.Methods[0], result)
	if len(result.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(result.Diagnostics))
	}
	if !strings.Contains(result.Diagnostics[0].Message, "must be static") {
		t.Errorf("unexpected message: %s", result.Diagnostics[0].Message)
	}
}

func TestNativeMethods_ReporterFailure(t *testing.T) {
	m := nativeMethod("bad", "int")
	m.CriticalNative = true
	c := fooClass(m)

	boom := errors.New("sink closed")
	_, err := NativeMethods(c, ReporterFunc(func(Diagnostic) error { return boom }))
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped reporter error, got %v", err)
	}
}

func TestValidate_Valid(t *testing.T) {
	c := fooClass(
		staticNative("registerNatives", "void"),
		nativeMethod("bar", "void", "int"),
	)
	result := Validate([]*model.ClassDecl{c}, model.DefaultOptions())
	if !result.IsValid() {
		t.Errorf("expected valid, got errors:\n%s", result.Error())
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got %v", result.Diagnostics)
	}
}

func TestValidate_DuplicateClass(t *testing.T) {
	a := fooClass(nativeMethod("a", "void"))
	b := fooClass(nativeMethod("b", "void"))
	result := Validate([]*model.ClassDecl{a, b}, model.DefaultOptions())
	assertError(t, result, "duplicate class")
}

func TestValidate_DuplicateNative(t *testing.T) {
	c := fooClass(
		nativeMethod("bar", "void", "int"),
		nativeMethod("bar", "int", "int"),
	)
	result := Validate([]*model.ClassDecl{c}, model.DefaultOptions())
	assertError(t, result, "duplicate native method bar(I)")
}

func TestValidate_RegisterNativesShape(t *testing.T) {
	tests := []struct {
		name    string
		method  model.MethodDecl
		message string
	}{
		{"instance", nativeMethod("registerNatives", "void"), "must be static"},
		{"params", staticNative("registerNatives", "void", "int"), "must not take parameters"},
		{"returns", staticNative("registerNatives", "int"), "must return void"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate([]*model.ClassDecl{fooClass(tt.method)}, model.DefaultOptions())
			assertError(t, result, tt.message)
		})
	}
}

func TestValidate_RequireRegisterNatives(t *testing.T) {
	c := fooClass(nativeMethod("bar", "void"))
	opts := model.DefaultOptions()

	if result := Validate([]*model.ClassDecl{c}, opts); !result.IsValid() {
		t.Errorf("expected valid without requirement, got:\n%s", result.Error())
	}

	opts.RequireRegisterNatives = true
	assertError(t, Validate([]*model.ClassDecl{c}, opts), "no native static void registerNatives")

	// Classes without natives are exempt.
	empty := fooClass()
	if result := Validate([]*model.ClassDecl{empty}, opts); !result.IsValid() {
		t.Errorf("expected class without natives to be valid, got:\n%s", result.Error())
	}
}

func TestValidate_Warnings(t *testing.T) {
	annotated := model.MethodDecl{Name: "java", Returns: model.Prim(model.Void), FastNative: true}
	c := fooClass(nativeMethod("bar", "void"), annotated)
	c.Fields = []model.FieldDecl{
		{Name: "counter", Type: model.Prim(model.Int), Modifiers: model.Modifiers{model.ModStatic}, Value: 3},
	}

	result := Validate([]*model.ClassDecl{c}, model.DefaultOptions())
	if !result.IsValid() {
		t.Fatalf("warnings must not invalidate, got:\n%s", result.Error())
	}
	assertWarning(t, result, "not final static")
	assertWarning(t, result, "has no effect")
}

func TestValidate_SharedPrefix(t *testing.T) {
	a := &model.ClassDecl{Name: "com.a.Util", Methods: []model.MethodDecl{nativeMethod("x", "void")}}
	b := &model.ClassDecl{Name: "com.b.Util", Methods: []model.MethodDecl{nativeMethod("y", "void")}}
	result := Validate([]*model.ClassDecl{a, b}, model.DefaultOptions())
	assertWarning(t, result, "registration prefix UTIL is shared with class com.a.Util")
}

func TestValidate_SkipsLocalAndReferenceOnly(t *testing.T) {
	bad := nativeMethod("bad", "int")
	bad.CriticalNative = true

	local := fooClass(bad)
	local.Scope = model.ScopeLocal
	ref := &model.ClassDecl{Name: "com.example.Ref", ReferenceOnly: true, Methods: []model.MethodDecl{bad}}

	result := Validate([]*model.ClassDecl{local, ref}, model.DefaultOptions())
	if len(result.Diagnostics) != 0 {
		t.Errorf("expected skipped classes to produce nothing, got %v", result.Diagnostics)
	}
}

func TestResult_Forward(t *testing.T) {
	r := &Result{}
	r.addError("a", "first")
	r.addWarning("b", "second")

	var got []string
	err := r.Forward(ReporterFunc(func(d Diagnostic) error {
		got = append(got, d.String())
		return nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"error: a: first", "warning: b: second"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("forwarded %v, want %v", got, want)
	}
	if r.Error() != "error: a: first" {
		t.Errorf("Error() = %q", r.Error())
	}
}

func assertError(t *testing.T, result *Result, substr string) {
	t.Helper()
	if result.IsValid() {
		t.Fatalf("expected error containing %q, got valid", substr)
	}
	if !strings.Contains(result.Error(), substr) {
		t.Errorf("expected error containing %q, got:\n%s", substr, result.Error())
	}
}

func assertWarning(t *testing.T, result *Result, substr string) {
	t.Helper()
	for _, d := range result.Diagnostics {
		if d.Severity == SeverityWarning && strings.Contains(d.Message, substr) {
			return
		}
	}
	t.Errorf("expected warning containing %q, got %v", substr, result.Diagnostics)
}
