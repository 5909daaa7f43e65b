package classfile

// ConstantPoolEntry is a tagged union over the constant_pool entry kinds
// the bridge layer needs to read or rewrite (JVM spec §4.4). Index fields
// name other constant_pool slots (1-based); unused fields are left zero.
type ConstantPoolEntry struct {
	Tag ConstantTag

	UTF8 string // TagUTF8

	Int32   int32   // TagInteger
	Float32 float32 // TagFloat
	Int64   int64   // TagLong
	Float64 float64 // TagDouble

	NameIndex uint16 // TagClass, TagString, TagMethodType, TagModule, TagPackage

	ClassIndex       uint16 // TagFieldref, TagMethodref, TagInterfaceMethodref
	NameAndTypeIndex uint16 // TagFieldref, TagMethodref, TagInterfaceMethodref, TagDynamic, TagInvokeDynamic

	DescriptorIndex uint16 // TagNameAndType (paired with NameIndex)

	ReferenceKind  uint8  // TagMethodHandle
	ReferenceIndex uint16 // TagMethodHandle

	BootstrapMethodAttrIndex uint16 // TagDynamic, TagInvokeDynamic
}

// AttributeInfo is an opaque attribute entry (JVM spec §4.7): the bridge
// layer does not need to interpret attribute contents beyond their name
// and raw bytes, so Info is kept as the undecoded wire payload.
type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
}

// MemberInfo is the common shape of field_info and method_info (JVM spec
// §4.5, §4.6).
type MemberInfo struct {
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

// ClassFile is a parsed JVM class file (JVM spec §4.1).
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool []ConstantPoolEntry // index 0 is unused; entries are 1-based
	AccessFlags  uint16
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []MemberInfo
	Methods      []MemberInfo
	Attributes   []AttributeInfo
}

// resolveUTF8 returns the UTF8 constant at index, or an error if index is
// out of range or does not name a TagUTF8 entry.
func (c *ClassFile) resolveUTF8(index uint16) (string, error) {
	if int(index) >= len(c.ConstantPool) {
		return "", &MalformedClassError{Reason: "constant pool index out of range"}
	}
	entry := c.ConstantPool[index]
	if entry.Tag != TagUTF8 {
		return "", &MalformedClassError{Reason: "constant pool index does not name a UTF8 entry"}
	}
	return entry.UTF8, nil
}

// ClassName resolves this class's own binary name via the ThisClass
// constant pool entry.
func (c *ClassFile) ClassName() (string, error) {
	if int(c.ThisClass) >= len(c.ConstantPool) {
		return "", &MalformedClassError{Reason: "this_class index out of range"}
	}
	classEntry := c.ConstantPool[c.ThisClass]
	if classEntry.Tag != TagClass {
		return "", &MalformedClassError{Reason: "this_class does not name a TagClass entry"}
	}
	return c.resolveUTF8(classEntry.NameIndex)
}

// FindMethod locates a method by its exact name and descriptor (JVM spec
// §4.3.3), returning a pointer into c.Methods so callers can mutate it
// in place (the transform layer rewrites the match's Code attribute).
func (c *ClassFile) FindMethod(name, descriptor string) (*MemberInfo, error) {
	for i := range c.Methods {
		m := &c.Methods[i]
		mName, err := c.resolveUTF8(m.NameIndex)
		if err != nil {
			return nil, err
		}
		mDesc, err := c.resolveUTF8(m.DescriptorIndex)
		if err != nil {
			return nil, err
		}
		if mName == name && mDesc == descriptor {
			return m, nil
		}
	}
	className, _ := c.ClassName()
	return nil, &MethodNotFoundError{ClassName: className, MethodName: name, Descriptor: descriptor}
}
