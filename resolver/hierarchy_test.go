package resolver

import (
	"strings"
	"testing"

	"github.com/benn-herrera/jnihgen/model"
)

func TestLink(t *testing.T) {
	base := &model.ClassDecl{Name: "com.example.Base"}
	outer := &model.ClassDecl{Name: "com.example.Outer", Extends: "com.example.Base"}
	inner := &model.ClassDecl{
		Name:      "com.example.Outer.Inner",
		Scope:     model.ScopeNested,
		Enclosing: "com.example.Outer",
		Extends:   "com.example.Outer$Sibling",
	}
	sibling := &model.ClassDecl{Name: "com.example.Outer.Sibling", Scope: model.ScopeNested, Enclosing: "com.example.Outer"}

	h, err := Link([]*model.ClassDecl{base, outer, inner, sibling})
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if outer.Superclass != base {
		t.Error("outer should extend base")
	}
	if inner.Outer != outer {
		t.Error("inner should be enclosed by outer")
	}
	if inner.Superclass != sibling {
		t.Error("binary name reference should resolve to the nested class")
	}
	if c, ok := h.Lookup("com.example.Outer$Inner"); !ok || c != inner {
		t.Error("lookup by binary name failed")
	}
	if inner.BinaryName() != "com/example/Outer$Inner" {
		t.Errorf("BinaryName = %q", inner.BinaryName())
	}
}

func TestLink_UnknownSuperclass(t *testing.T) {
	c := &model.ClassDecl{Name: "com.example.Foo", Extends: "android.app.Activity"}
	if _, err := Link([]*model.ClassDecl{c}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Superclass != nil {
		t.Error("unknown superclass should stay unlinked")
	}
}

func TestLink_Cycle(t *testing.T) {
	a := &model.ClassDecl{Name: "A", Extends: "B"}
	b := &model.ClassDecl{Name: "B", Extends: "A"}
	_, err := Link([]*model.ClassDecl{a, b})
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Errorf("expected cycle error, got %v", err)
	}
}

func TestIsAssignable(t *testing.T) {
	myErr := &model.ClassDecl{Name: "com.example.MyError", Extends: "java.lang.IllegalStateException"}
	sub := &model.ClassDecl{Name: "com.example.SubError", Extends: "com.example.MyError"}
	plain := &model.ClassDecl{Name: "com.example.Plain"}
	h, err := Link([]*model.ClassDecl{myErr, sub, plain})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		from, to string
		want     bool
	}{
		{"com.example.SubError", model.JavaLangThrowable, true},
		{"com.example.MyError", "java.lang.RuntimeException", true},
		{"java.io.FileNotFoundException", model.JavaLangThrowable, true},
		{model.JavaLangString, model.JavaLangString, true},
		{"com.example.Plain", model.JavaLangThrowable, false},
		{model.JavaLangThrowable, "com.example.MyError", false},
		{"com.unknown.Thing", model.JavaLangObject, false},
	}
	for _, tt := range tests {
		if got := h.IsAssignable(tt.from, tt.to); got != tt.want {
			t.Errorf("IsAssignable(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
