package gen

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/jnihgen/jni"
	"github.com/benn-herrera/jnihgen/model"
)

func init() {
	Register("jnistubs", func() Generator { return &JNIStubsGenerator{} })
}

// JNIStubsGenerator produces a C implementation scaffold per class:
//   - one function body per native method, returning a zero value
//   - a registerNatives body that fills the method table and registers it
//
// Stubs are scaffold files and are never overwritten once they exist.
type JNIStubsGenerator struct{}

func (g *JNIStubsGenerator) Name() string { return "jnistubs" }

func (g *JNIStubsGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	var files []*OutputFile
	for _, c := range ctx.Targets() {
		syms := jni.ResolveSymbols(c)
		if len(syms) == 0 {
			continue
		}
		files = append(files, &OutputFile{
			Path:     ctx.StubFileName(c),
			Content:  []byte(WriteStubs(c, syms, ctx.HeaderFileName(c), ctx.SigsFileName(c), ctx.Types)),
			Scaffold: true,
		})
	}
	return files, nil
}

// WriteStubs renders the implementation scaffold for c.
func WriteStubs(c *model.ClassDecl, syms []jni.Symbol, header, sigsHeader string, types jni.Assignability) string {
	prefix := jni.RegistrationPrefix(c)
	table := RegistrableSymbols(syms)

	var b strings.Builder
	fmt.Fprintf(&b, "/* Native implementation of %s. Generated once; safe to edit. */\n", c.Name)
	fmt.Fprintf(&b, "#include \"%s\"\n", header)
	fmt.Fprintf(&b, "#include \"%s\"\n", sigsHeader)

	for _, sym := range syms {
		m := sym.Method
		b.WriteString("\n")
		fmt.Fprintf(&b, "JNIEXPORT %s JNICALL %s\n", jni.CType(m.Returns, types), sym.Name)
		fmt.Fprintf(&b, "  (%s) {\n", prototypeParams(m, types))

		if m.Name == jni.RegisterNativesMethod && m.IsStatic() && !m.CriticalNative && len(table) > 0 {
			for _, t := range table {
				fmt.Fprintf(&b, "    SET_JNI_METHOD(%s_METHODS, %s, %s);\n", prefix, MethodMacroBase(prefix, t), t.Name)
			}
			fmt.Fprintf(&b, "    %s_RegisterNatives(env, clazz);\n", prefix)
			b.WriteString("}\n")
			continue
		}

		b.WriteString("    /* TODO: implement */\n")
		if ret := zeroValue(m.Returns); ret != "" {
			fmt.Fprintf(&b, "    return %s;\n", ret)
		}
		b.WriteString("}\n")
	}
	return b.String()
}

func zeroValue(t model.TypeRef) string {
	switch {
	case t.IsVoid():
		return ""
	case t.Kind == model.KindPrimitive && t.Primitive == model.Boolean:
		return "JNI_FALSE"
	case t.IsPrimitive():
		return "0"
	default:
		return "NULL"
	}
}
