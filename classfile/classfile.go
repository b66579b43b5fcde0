package classfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

type ClassFile struct {
	MinorVersion    uint16
	MajorVersion    uint16
	ConstantPool    ConstantPool
	AccessFlags     AccessFlags
	ThisClass       uint16
	SuperClass      uint16
	Interfaces      []uint16
	Fields          []FieldInfo
	Methods         []MethodInfo
	InnerClasses    []InnerClassEntry
	EnclosingMethod *EnclosingMethod
}

type FieldInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	// ConstantValueIndex is 0 when the field has no ConstantValue attribute.
	ConstantValueIndex uint16
}

type MethodInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	// Annotations holds type descriptors from both the visible and the
	// invisible annotation attributes.
	Annotations []string
	// ParameterNames comes from MethodParameters, when compiled with -parameters.
	ParameterNames []string
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

type EnclosingMethod struct {
	ClassIndex  uint16
	MethodIndex uint16
}

func (cf *ClassFile) ClassName() string {
	return cf.ConstantPool.GetClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.ConstantPool.GetClassName(cf.SuperClass)
}

// Nesting describes how this class is declared, from its own InnerClasses entry.
type Nesting struct {
	Outer     string // internal name of the enclosing class, empty for top-level and local classes
	InnerName string // simple name, empty for anonymous classes
	Local     bool
	Flags     AccessFlags
}

// Nesting reports the declaration scope of cf. A class without an InnerClasses
// entry for itself is top-level unless it carries EnclosingMethod.
func (cf *ClassFile) Nesting() Nesting {
	for _, ic := range cf.InnerClasses {
		if cf.ConstantPool.GetClassName(ic.InnerClassInfoIndex) != cf.ClassName() {
			continue
		}
		n := Nesting{
			Outer:     cf.ConstantPool.GetClassName(ic.OuterClassInfoIndex),
			InnerName: cf.ConstantPool.GetUtf8(ic.InnerNameIndex),
			Flags:     ic.InnerClassAccessFlags,
		}
		n.Local = n.Outer == "" || cf.EnclosingMethod != nil
		return n
	}
	return Nesting{Local: cf.EnclosingMethod != nil}
}

func (f *FieldInfo) Name(cp ConstantPool) string       { return cp.GetUtf8(f.NameIndex) }
func (f *FieldInfo) Descriptor(cp ConstantPool) string { return cp.GetUtf8(f.DescriptorIndex) }

// ConstantValue returns the compile-time constant of f, if any.
func (f *FieldInfo) ConstantValue(cp ConstantPool) (any, bool) {
	if f.ConstantValueIndex == 0 {
		return nil, false
	}
	return cp.GetConstant(f.ConstantValueIndex)
}

func (m *MethodInfo) Name(cp ConstantPool) string       { return cp.GetUtf8(m.NameIndex) }
func (m *MethodInfo) Descriptor(cp ConstantPool) string { return cp.GetUtf8(m.DescriptorIndex) }

func (m *MethodInfo) HasAnnotation(descriptor string) bool {
	for _, a := range m.Annotations {
		if a == descriptor {
			return true
		}
	}
	return false
}

func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	magic := r.readU4()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}
	constantPoolCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read header: %w", r.err)
	}
	if constantPoolCount == 0 {
		return nil, fmt.Errorf("invalid constant pool count 0")
	}

	cf.ConstantPool = make(ConstantPool, constantPoolCount-1)
	for i := uint16(1); i < constantPoolCount; i++ {
		entry, wide, err := readConstantPoolEntry(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i, err)
		}
		cf.ConstantPool[i-1] = entry
		if wide {
			i++
		}
	}

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()
	interfacesCount := r.readU2()
	cf.Interfaces = make([]uint16, interfacesCount)
	for i := range cf.Interfaces {
		cf.Interfaces[i] = r.readU2()
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", r.err)
	}

	fieldsCount := r.readU2()
	cf.Fields = make([]FieldInfo, fieldsCount)
	for i := range cf.Fields {
		if err := readField(r, cf.ConstantPool, &cf.Fields[i]); err != nil {
			return nil, fmt.Errorf("failed to read field %d: %w", i, err)
		}
	}

	methodsCount := r.readU2()
	cf.Methods = make([]MethodInfo, methodsCount)
	for i := range cf.Methods {
		if err := readMethod(r, cf.ConstantPool, &cf.Methods[i]); err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, err)
		}
	}

	if err := readAttributes(r, cf.ConstantPool, func(name string, a *reader) {
		switch name {
		case "InnerClasses":
			n := a.readU2()
			for i := uint16(0); i < n; i++ {
				cf.InnerClasses = append(cf.InnerClasses, InnerClassEntry{
					InnerClassInfoIndex:   a.readU2(),
					OuterClassInfoIndex:   a.readU2(),
					InnerNameIndex:        a.readU2(),
					InnerClassAccessFlags: AccessFlags(a.readU2()),
				})
			}
		case "EnclosingMethod":
			cf.EnclosingMethod = &EnclosingMethod{ClassIndex: a.readU2(), MethodIndex: a.readU2()}
		}
	}); err != nil {
		return nil, fmt.Errorf("failed to read class attributes: %w", err)
	}

	return cf, nil
}

func readField(r *reader, cp ConstantPool, f *FieldInfo) error {
	f.AccessFlags = AccessFlags(r.readU2())
	f.NameIndex = r.readU2()
	f.DescriptorIndex = r.readU2()
	return readAttributes(r, cp, func(name string, a *reader) {
		if name == "ConstantValue" {
			f.ConstantValueIndex = a.readU2()
		}
	})
}

func readMethod(r *reader, cp ConstantPool, m *MethodInfo) error {
	m.AccessFlags = AccessFlags(r.readU2())
	m.NameIndex = r.readU2()
	m.DescriptorIndex = r.readU2()
	return readAttributes(r, cp, func(name string, a *reader) {
		switch name {
		case "RuntimeVisibleAnnotations", "RuntimeInvisibleAnnotations":
			n := a.readU2()
			for i := uint16(0); i < n && a.err == nil; i++ {
				m.Annotations = append(m.Annotations, cp.GetUtf8(readAnnotation(a)))
			}
		case "MethodParameters":
			n := a.readU1()
			for i := uint8(0); i < n && a.err == nil; i++ {
				m.ParameterNames = append(m.ParameterNames, cp.GetUtf8(a.readU2()))
				a.readU2() // access flags
			}
		}
	})
}

// readAttributes reads an attribute table and hands each attribute body to
// visit through a reader bounded to that body. Attributes visit ignores are skipped.
func readAttributes(r *reader, cp ConstantPool, visit func(name string, a *reader)) error {
	count := r.readU2()
	for i := uint16(0); i < count; i++ {
		nameIndex := r.readU2()
		length := r.readU4()
		info := r.readBytes(int(length))
		if r.err != nil {
			return r.err
		}
		a := &reader{r: bytes.NewReader(info)}
		visit(cp.GetUtf8(nameIndex), a)
		if a.err != nil {
			return fmt.Errorf("malformed %s attribute: %w", cp.GetUtf8(nameIndex), a.err)
		}
	}
	return r.err
}

// readAnnotation consumes one annotation and returns its type index. Element
// values are skipped.
func readAnnotation(a *reader) uint16 {
	typeIndex := a.readU2()
	pairs := a.readU2()
	for i := uint16(0); i < pairs && a.err == nil; i++ {
		a.readU2() // element name
		skipElementValue(a)
	}
	return typeIndex
}

func skipElementValue(a *reader) {
	switch tag := a.readU1(); tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's', 'c':
		a.skip(2)
	case 'e':
		a.skip(4)
	case '@':
		readAnnotation(a)
	case '[':
		n := a.readU2()
		for i := uint16(0); i < n && a.err == nil; i++ {
			skipElementValue(a)
		}
	default:
		if a.err == nil {
			a.err = fmt.Errorf("unknown element value tag %q", tag)
		}
	}
}
