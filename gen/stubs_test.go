package gen

import (
	"strings"
	"testing"

	"github.com/benn-herrera/jnihgen/model"
)

func TestJNIStubsGenerator(t *testing.T) {
	c := fooClass(
		staticNative("registerNatives", "void"),
		native("count", "int"),
		native("name", "java.lang.String"),
		native("ok", "boolean"),
		native("reset", "void"),
	)
	empty := &model.ClassDecl{Name: "com.example.Empty"}
	ctx := NewContext([]*model.ClassDecl{c, empty}, model.DefaultOptions(), nil, "out")

	files, err := (&JNIStubsGenerator{}).Generate(ctx)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	f := files[0]
	if f.Path != "com_example_Foo_impl.c" {
		t.Errorf("path = %q", f.Path)
	}
	if !f.Scaffold {
		t.Error("stub file should be scaffold")
	}

	content := string(f.Content)
	for _, want := range []string{
		"#include \"com_example_Foo.h\"\n",
		"#include \"com_example_Foo_sigs.h\"\n",
		"SET_JNI_METHOD(FOO_METHODS, FOO_count, Java_com_example_Foo_count);\n",
		"SET_JNI_METHOD(FOO_METHODS, FOO_reset, Java_com_example_Foo_reset);\n",
		"FOO_RegisterNatives(env, clazz);\n",
		"JNIEXPORT jint JNICALL Java_com_example_Foo_count\n  (JNIEnv *env, jobject self) {\n",
		"    return 0;\n",
		"    return NULL;\n",
		"    return JNI_FALSE;\n",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("missing %q in:\n%s", want, content)
		}
	}
	if strings.Contains(content, "SET_JNI_METHOD(FOO_METHODS, FOO_registerNatives") {
		t.Error("registerNatives must not register itself")
	}
}
