package jni

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/jnihgen/model"
)

// Assignability answers whether a declared type can be assigned to a well-known
// JDK type. The resolver's Hierarchy implements it.
type Assignability interface {
	IsAssignable(from, to string) bool
}

// nominal treats each type as assignable only to itself.
type nominal struct{}

func (nominal) IsAssignable(from, to string) bool { return from == to }

// Nominal is the Assignability used when no class hierarchy is available.
var Nominal Assignability = nominal{}

var primitiveDescriptors = map[model.PrimitiveKind]string{
	model.Void:    "V",
	model.Boolean: "Z",
	model.Byte:    "B",
	model.Char:    "C",
	model.Short:   "S",
	model.Int:     "I",
	model.Long:    "J",
	model.Float:   "F",
	model.Double:  "D",
}

var primitiveCTypes = map[model.PrimitiveKind]string{
	model.Void:    "void",
	model.Boolean: "jboolean",
	model.Byte:    "jbyte",
	model.Char:    "jchar",
	model.Short:   "jshort",
	model.Int:     "jint",
	model.Long:    "jlong",
	model.Float:   "jfloat",
	model.Double:  "jdouble",
}

var primitiveArrayCTypes = map[model.PrimitiveKind]string{
	model.Boolean: "jbooleanArray",
	model.Byte:    "jbyteArray",
	model.Char:    "jcharArray",
	model.Short:   "jshortArray",
	model.Int:     "jintArray",
	model.Long:    "jlongArray",
	model.Float:   "jfloatArray",
	model.Double:  "jdoubleArray",
}

// Descriptor returns the JVM type descriptor of t, e.g. "I" or "[Ljava/lang/String;".
func Descriptor(t model.TypeRef) string {
	var b strings.Builder
	writeDescriptor(&b, t)
	return b.String()
}

func writeDescriptor(b *strings.Builder, t model.TypeRef) {
	switch t.Kind {
	case model.KindPrimitive:
		d, ok := primitiveDescriptors[t.Primitive]
		if !ok {
			panic(fmt.Sprintf("jni: unknown primitive kind %v", t.Primitive))
		}
		b.WriteString(d)
	case model.KindArray:
		if t.Component == nil {
			panic("jni: array type without component")
		}
		b.WriteByte('[')
		writeDescriptor(b, *t.Component)
	case model.KindDeclared:
		b.WriteByte('L')
		b.WriteString(strings.ReplaceAll(t.Name, ".", "/"))
		b.WriteByte(';')
	default:
		panic(fmt.Sprintf("jni: unknown type kind %d", t.Kind))
	}
}

// ParameterSignature concatenates the parameter descriptors of m.
func ParameterSignature(m *model.MethodDecl) string {
	var b strings.Builder
	for _, p := range m.Parameters {
		writeDescriptor(&b, p.Type)
	}
	return b.String()
}

// MethodSignature returns the full JVM method descriptor "(params)return".
func MethodSignature(m *model.MethodDecl) string {
	return "(" + ParameterSignature(m) + ")" + Descriptor(m.Returns)
}

// CType returns the C type name used for t in a JNI prototype.
func CType(t model.TypeRef, types Assignability) string {
	switch t.Kind {
	case model.KindPrimitive:
		c, ok := primitiveCTypes[t.Primitive]
		if !ok {
			panic(fmt.Sprintf("jni: unknown primitive kind %v", t.Primitive))
		}
		return c
	case model.KindArray:
		if t.Component == nil {
			panic("jni: array type without component")
		}
		switch t.Component.Kind {
		case model.KindPrimitive:
			c, ok := primitiveArrayCTypes[t.Component.Primitive]
			if !ok {
				panic(fmt.Sprintf("jni: unknown array component %v", t.Component.Primitive))
			}
			return c
		case model.KindArray, model.KindDeclared:
			return "jobjectArray"
		default:
			panic(fmt.Sprintf("jni: unknown array component kind %d", t.Component.Kind))
		}
	case model.KindDeclared:
		if types == nil {
			types = Nominal
		}
		switch {
		case types.IsAssignable(t.Name, model.JavaLangString):
			return "jstring"
		case types.IsAssignable(t.Name, model.JavaLangThrowable):
			return "jthrowable"
		case types.IsAssignable(t.Name, model.JavaLangClass):
			return "jclass"
		default:
			return "jobject"
		}
	default:
		panic(fmt.Sprintf("jni: unknown type kind %d", t.Kind))
	}
}
