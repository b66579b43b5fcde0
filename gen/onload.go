package gen

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/jnihgen/jni"
	"github.com/benn-herrera/jnihgen/model"
)

func init() {
	Register("jnionload", func() Generator { return &JNIOnLoadGenerator{} })
}

// OnLoadEntry is one class registered by the aggregate function.
type OnLoadEntry struct {
	SigsHeader string
	BinaryName string
	Prefix     string
}

// OnLoadEntries lists the targets with at least one registrable native, in
// input order.
func OnLoadEntries(ctx *Context) []OnLoadEntry {
	var entries []OnLoadEntry
	for _, c := range ctx.Targets() {
		if len(RegistrableSymbols(jni.ResolveSymbols(c))) == 0 {
			continue
		}
		entries = append(entries, OnLoadEntry{
			SigsHeader: ctx.SigsFileName(c),
			BinaryName: c.BinaryName(),
			Prefix:     jni.RegistrationPrefix(c),
		})
	}
	return entries
}

// WriteOnLoad renders the aggregate header defining fn, which registers the
// natives of every entry and is meant to be called from JNI_OnLoad.
func WriteOnLoad(headerName, fn string, entries []OnLoadEntry) string {
	stem := jni.Encode(strings.TrimSuffix(headerName, ".h"), jni.EncodeClass)

	var b strings.Builder
	fileTop(&b)
	guardBegin(&b, stem, "ONLOAD")

	if len(entries) > 0 {
		b.WriteString("\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "#include \"%s\"\n", e.SigsHeader)
		}
	}

	b.WriteString("\n")
	b.WriteString("#ifdef __cplusplus\n")
	b.WriteString("#define JNIHGEN_FIND_CLASS(_env, _name) (_env)->FindClass(_name)\n")
	b.WriteString("#define JNIHGEN_DELETE_LOCAL_REF(_env, _ref) (_env)->DeleteLocalRef(_ref)\n")
	b.WriteString("#else\n")
	b.WriteString("#define JNIHGEN_FIND_CLASS(_env, _name) (*(_env))->FindClass(_env, _name)\n")
	b.WriteString("#define JNIHGEN_DELETE_LOCAL_REF(_env, _ref) (*(_env))->DeleteLocalRef(_env, _ref)\n")
	b.WriteString("#endif\n")

	b.WriteString("\n")
	fmt.Fprintf(&b, "static inline jint %s(JNIEnv *env) {\n", fn)
	if len(entries) > 0 {
		b.WriteString("    jclass clazz;\n")
		b.WriteString("    jint rc;\n")
	}
	for _, e := range entries {
		b.WriteString("\n")
		fmt.Fprintf(&b, "    clazz = JNIHGEN_FIND_CLASS(env, %s);\n", cString(e.BinaryName))
		b.WriteString("    if (clazz == NULL) {\n")
		b.WriteString("        return JNI_ERR;\n")
		b.WriteString("    }\n")
		fmt.Fprintf(&b, "    rc = %s_RegisterNatives(env, clazz);\n", e.Prefix)
		b.WriteString("    JNIHGEN_DELETE_LOCAL_REF(env, clazz);\n")
		b.WriteString("    if (rc != JNI_OK) {\n")
		b.WriteString("        return JNI_ERR;\n")
		b.WriteString("    }\n")
	}
	if len(entries) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("    return JNI_OK;\n")
	b.WriteString("}\n")

	guardEnd(&b)
	return b.String()
}

// JNIOnLoadGenerator produces the single onload aggregate header.
type JNIOnLoadGenerator struct{}

func (g *JNIOnLoadGenerator) Name() string { return "jnionload" }

func (g *JNIOnLoadGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	header := ctx.Options.OnLoadHeader
	fn := ctx.Options.OnLoadFunction
	if header == "" || fn == "" {
		d := model.DefaultOptions()
		if header == "" {
			header = d.OnLoadHeader
		}
		if fn == "" {
			fn = d.OnLoadFunction
		}
	}
	return []*OutputFile{{
		Path:    header,
		Content: []byte(WriteOnLoad(header, fn, OnLoadEntries(ctx))),
	}}, nil
}
