package classfile

import (
	"fmt"
	"math"
)

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Value string
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

type ConstantFloatInfo struct {
	Value float32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

type ConstantDoubleInfo struct {
	Value float64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

type ConstantStringInfo struct {
	StringIndex uint16
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

// ConstantRefInfo covers the entries the header generator never inspects
// (member references, method handles, dynamic call sites, modules).
type ConstantRefInfo struct {
	Kind ConstantTag
	Data []byte
}

func (c *ConstantRefInfo) Tag() ConstantTag { return c.Kind }

// refSizes is the payload size of each ConstantRefInfo tag.
var refSizes = map[ConstantTag]int{
	ConstantFieldref:           4,
	ConstantMethodref:          4,
	ConstantInterfaceMethodref: 4,
	ConstantNameAndType:        4,
	ConstantMethodHandle:       3,
	ConstantMethodType:         2,
	ConstantDynamic:            4,
	ConstantInvokeDynamic:      4,
	ConstantModule:             2,
	ConstantPackage:            2,
}

// ConstantPool is indexed from 1; slot i-1 holds entry i. The slot after a
// long or double is nil.
type ConstantPool []ConstantPoolEntry

func (cp ConstantPool) entry(index uint16) ConstantPoolEntry {
	if index == 0 || int(index) > len(cp) {
		return nil
	}
	return cp[index-1]
}

func (cp ConstantPool) GetUtf8(index uint16) string {
	if e, ok := cp.entry(index).(*ConstantUtf8Info); ok {
		return e.Value
	}
	return ""
}

func (cp ConstantPool) GetClassName(index uint16) string {
	if e, ok := cp.entry(index).(*ConstantClassInfo); ok {
		return cp.GetUtf8(e.NameIndex)
	}
	return ""
}

// GetConstant returns the value of a ConstantValue target: int32, int64,
// float32, float64 or string.
func (cp ConstantPool) GetConstant(index uint16) (any, bool) {
	switch e := cp.entry(index).(type) {
	case *ConstantIntegerInfo:
		return e.Value, true
	case *ConstantLongInfo:
		return e.Value, true
	case *ConstantFloatInfo:
		return e.Value, true
	case *ConstantDoubleInfo:
		return e.Value, true
	case *ConstantStringInfo:
		return cp.GetUtf8(e.StringIndex), true
	}
	return nil, false
}

// readConstantPoolEntry reads one entry. wide is true for long and double,
// which occupy two pool slots.
func readConstantPoolEntry(r *reader) (entry ConstantPoolEntry, wide bool, err error) {
	tag := ConstantTag(r.readU1())
	if r.err != nil {
		return nil, false, r.err
	}

	switch tag {
	case ConstantUtf8:
		length := r.readU2()
		b := r.readBytes(int(length))
		entry = &ConstantUtf8Info{Value: decodeModifiedUtf8(b)}
	case ConstantInteger:
		entry = &ConstantIntegerInfo{Value: int32(r.readU4())}
	case ConstantFloat:
		entry = &ConstantFloatInfo{Value: math.Float32frombits(r.readU4())}
	case ConstantLong:
		high, low := r.readU4(), r.readU4()
		entry, wide = &ConstantLongInfo{Value: int64(uint64(high)<<32 | uint64(low))}, true
	case ConstantDouble:
		high, low := r.readU4(), r.readU4()
		entry, wide = &ConstantDoubleInfo{Value: math.Float64frombits(uint64(high)<<32 | uint64(low))}, true
	case ConstantClass:
		entry = &ConstantClassInfo{NameIndex: r.readU2()}
	case ConstantString:
		entry = &ConstantStringInfo{StringIndex: r.readU2()}
	default:
		size, ok := refSizes[tag]
		if !ok {
			return nil, false, fmt.Errorf("unknown constant pool tag: %d", tag)
		}
		entry = &ConstantRefInfo{Kind: tag, Data: r.readBytes(size)}
	}
	if r.err != nil {
		return nil, false, r.err
	}
	return entry, wide, nil
}
