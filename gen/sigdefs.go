package gen

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/jnihgen/jni"
	"github.com/benn-herrera/jnihgen/model"
)

func init() {
	Register("jnisigs", func() Generator { return &JNISigsGenerator{} })
}

// MethodMacroBase returns the per-method macro stem, without the __NAME/__SIG suffix.
func MethodMacroBase(prefix string, sym jni.Symbol) string {
	base := prefix + "_" + jni.Encode(sym.Method.Name, jni.EncodeFieldStub)
	if sym.Overloaded {
		base += "__" + jni.Encode(jni.ParameterSignature(sym.Method), jni.EncodeJNI)
	}
	return base
}

// RegistrableSymbols drops registerNatives, which is never part of the
// registration table.
func RegistrableSymbols(syms []jni.Symbol) []jni.Symbol {
	out := make([]jni.Symbol, 0, len(syms))
	for _, s := range syms {
		if s.Method.Name == jni.RegisterNativesMethod {
			continue
		}
		out = append(out, s)
	}
	return out
}

// WriteSignatureDefs renders the NAME/SIG macro header used to build
// RegisterNatives tables on the native side.
func WriteSignatureDefs(c *model.ClassDecl) string {
	cname := jni.ClassMacroName(c)
	prefix := jni.RegistrationPrefix(c)
	syms := jni.ResolveSymbols(c)

	var b strings.Builder
	fileTop(&b)
	guardBegin(&b, cname, "METHOD_SIGNATURES")

	idx := 0
	for _, sym := range syms {
		base := MethodMacroBase(prefix, sym)
		b.WriteString("\n")
		methodDoc(&b, cname, sym.Method.Name, sym.Signature)
		fmt.Fprintf(&b, "#define %s__NAME %s\n", base, cString(sym.Method.Name))
		fmt.Fprintf(&b, "#define %s__SIG %s\n", base, cString(sym.Signature))
		if sym.Method.Name != jni.RegisterNativesMethod {
			fmt.Fprintf(&b, "#define %s__ARR_IDX %d\n", base, idx)
			idx++
		}
	}

	table := RegistrableSymbols(syms)
	methods := prefix + "_METHODS"
	count := prefix + "_METHOD_COUNT"

	b.WriteString("\n")
	if len(table) > 0 {
		fmt.Fprintf(&b, "static JNINativeMethod %s[] = {\n", methods)
		for _, sym := range table {
			base := MethodMacroBase(prefix, sym)
			fmt.Fprintf(&b, "    {(char *) %s__NAME, (char *) %s__SIG, NULL},\n", base, base)
		}
		b.WriteString("};\n")
	}
	fmt.Fprintf(&b, "#define %s %d\n", count, len(table))

	if len(table) > 0 {
		b.WriteString("\n")
		b.WriteString("#ifndef SET_JNI_METHOD\n")
		b.WriteString("#define SET_JNI_METHOD(_methods, _mth, _func) _methods[_mth##__ARR_IDX].fnPtr = (void *) &(_func)\n")
		b.WriteString("#endif\n")
		b.WriteString("\n")
		b.WriteString("#ifdef __cplusplus\n")
		fmt.Fprintf(&b, "#define %s_RegisterNatives(_env, _class) (_env)->RegisterNatives(_class, %s, %s)\n", prefix, methods, count)
		b.WriteString("#else\n")
		fmt.Fprintf(&b, "#define %s_RegisterNatives(_env, _class) (*(_env))->RegisterNatives(_env, _class, %s, %s)\n", prefix, methods, count)
		b.WriteString("#endif\n")
	}

	guardEnd(&b)
	return b.String()
}

// cString quotes s as a C string literal. Bytes outside printable ASCII use
// three-digit octal escapes so a following character can never extend them.
func cString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c >= 0x20 && c <= 0x7e:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "\\%03o", c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// JNISigsGenerator produces one <stem>_sigs.h per class.
type JNISigsGenerator struct{}

func (g *JNISigsGenerator) Name() string { return "jnisigs" }

func (g *JNISigsGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	var files []*OutputFile
	for _, c := range ctx.Targets() {
		files = append(files, &OutputFile{
			Path:    ctx.SigsFileName(c),
			Content: []byte(WriteSignatureDefs(c)),
		})
	}
	return files, nil
}
