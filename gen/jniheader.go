package gen

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/jnihgen/jni"
	"github.com/benn-herrera/jnihgen/model"
)

func init() {
	Register("jniheader", func() Generator { return &JNIHeaderGenerator{} })
}

// WriteHeader renders the JNI declarations header for c.
func WriteHeader(c *model.ClassDecl, types jni.Assignability, windows bool) string {
	cname := jni.ClassMacroName(c)

	var b strings.Builder
	fileTop(&b)
	guardBegin(&b, cname, "METHODS")
	cppGuardBegin(&b)

	writeStatics(&b, c, windows)
	for _, sym := range jni.ResolveSymbols(c) {
		writePrototype(&b, cname, sym, types)
	}

	cppGuardEnd(&b)
	guardEnd(&b)
	return b.String()
}

func writePrototype(b *strings.Builder, cname string, sym jni.Symbol, types jni.Assignability) {
	m := sym.Method
	methodDoc(b, cname, m.Name, sym.Signature)
	fmt.Fprintf(b, "JNIEXPORT %s JNICALL %s\n", jni.CType(m.Returns, types), sym.Name)
	fmt.Fprintf(b, "  (%s);\n\n", prototypeParams(m, types))
}

// prototypeParams returns the C parameter list of m. CriticalNative methods
// receive neither JNIEnv nor the class/instance handle.
func prototypeParams(m *model.MethodDecl, types jni.Assignability) string {
	var params []string
	if !m.CriticalNative {
		params = append(params, "JNIEnv *env")
		if m.IsStatic() {
			params = append(params, "jclass clazz")
		} else {
			params = append(params, "jobject self")
		}
	}
	for i, p := range m.Parameters {
		params = append(params, jni.CType(p.Type, types)+" "+m.ParameterName(i))
	}
	if len(params) == 0 {
		return "void"
	}
	return strings.Join(params, ", ")
}

func methodDoc(b *strings.Builder, cname, methodName, signature string) {
	b.WriteString("/*\n")
	fmt.Fprintf(b, " * Class:     %s\n", cname)
	fmt.Fprintf(b, " * Method:    %s\n", jni.Encode(methodName, jni.EncodeFieldStub))
	fmt.Fprintf(b, " * Signature: %s\n", jni.Encode(signature, jni.EncodeSignature))
	b.WriteString(" */\n")
}

func fileTop(b *strings.Builder) {
	b.WriteString("/* DO NOT EDIT THIS FILE - it is machine generated */\n")
	b.WriteString("#include <jni.h>\n")
}

func guardName(cname, kind string) string {
	return strings.ToUpper("_Included_" + cname + "_" + kind)
}

func guardBegin(b *strings.Builder, cname, kind string) {
	g := guardName(cname, kind)
	b.WriteString("\n")
	fmt.Fprintf(b, "#ifndef %s\n", g)
	fmt.Fprintf(b, "#define %s\n", g)
}

func guardEnd(b *strings.Builder) {
	b.WriteString("#endif\n")
}

func cppGuardBegin(b *strings.Builder) {
	b.WriteString("#ifdef __cplusplus\n")
	b.WriteString("extern \"C\" {\n")
	b.WriteString("#endif\n")
}

func cppGuardEnd(b *strings.Builder) {
	b.WriteString("#ifdef __cplusplus\n")
	b.WriteString("}\n")
	b.WriteString("#endif\n")
}

// JNIHeaderGenerator produces one <stem>.h declarations header per class.
type JNIHeaderGenerator struct{}

func (g *JNIHeaderGenerator) Name() string { return "jniheader" }

func (g *JNIHeaderGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	var files []*OutputFile
	for _, c := range ctx.Targets() {
		files = append(files, &OutputFile{
			Path:    ctx.HeaderFileName(c),
			Content: []byte(WriteHeader(c, ctx.Types, ctx.Windows)),
		})
	}
	return files, nil
}
