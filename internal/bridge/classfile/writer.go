package classfile

import "math"

// builder accumulates the serialized byte form of a class file, mirroring
// cursor's read primitives in reverse.
type builder struct {
	buf []byte
}

func (b *builder) u1(v uint8) {
	b.buf = append(b.buf, v)
}

func (b *builder) u2(v uint16) {
	b.buf = append(b.buf, byte(v>>8), byte(v))
}

func (b *builder) u4(v uint32) {
	b.buf = append(b.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (b *builder) u8(v uint64) {
	b.u4(uint32(v >> 32))
	b.u4(uint32(v))
}

func (b *builder) bytes(v []byte) {
	b.buf = append(b.buf, v...)
}

// Write serializes c back into the binary class file format. Round-tripping
// Parse then Write reproduces the original bytes for any class file Parse
// accepted, modulo the edits callers made to the in-memory structure.
func (c *ClassFile) Write() ([]byte, error) {
	b := &builder{}
	b.u4(classMagic)
	b.u2(c.MinorVersion)
	b.u2(c.MajorVersion)

	writeConstantPool(b, c.ConstantPool)

	b.u2(c.AccessFlags)
	b.u2(c.ThisClass)
	b.u2(c.SuperClass)

	b.u2(uint16(len(c.Interfaces)))
	for _, iface := range c.Interfaces {
		b.u2(iface)
	}

	writeMembers(b, c.Fields)
	writeMembers(b, c.Methods)
	writeAttributes(b, c.Attributes)

	return b.buf, nil
}

func writeConstantPool(b *builder, pool []ConstantPoolEntry) {
	b.u2(uint16(len(pool)))
	for i := 1; i < len(pool); i++ {
		entry := pool[i]
		if entry.Tag == 0 {
			// second slot of a preceding wide (Long/Double) entry
			continue
		}
		b.u1(uint8(entry.Tag))
		switch entry.Tag {
		case TagUTF8:
			raw := []byte(entry.UTF8)
			b.u2(uint16(len(raw)))
			b.bytes(raw)
		case TagInteger:
			b.u4(uint32(entry.Int32))
		case TagFloat:
			b.u4(math.Float32bits(entry.Float32))
		case TagLong:
			b.u8(uint64(entry.Int64))
		case TagDouble:
			b.u8(math.Float64bits(entry.Float64))
		case TagClass, TagString, TagMethodType, TagModule, TagPackage:
			b.u2(entry.NameIndex)
		case TagFieldref, TagMethodref, TagInterfaceMethodref:
			b.u2(entry.ClassIndex)
			b.u2(entry.NameAndTypeIndex)
		case TagNameAndType:
			b.u2(entry.NameIndex)
			b.u2(entry.DescriptorIndex)
		case TagMethodHandle:
			b.u1(entry.ReferenceKind)
			b.u2(entry.ReferenceIndex)
		case TagDynamic, TagInvokeDynamic:
			b.u2(entry.BootstrapMethodAttrIndex)
			b.u2(entry.NameAndTypeIndex)
		}
	}
}

func writeMembers(b *builder, members []MemberInfo) {
	b.u2(uint16(len(members)))
	for _, m := range members {
		b.u2(m.AccessFlags)
		b.u2(m.NameIndex)
		b.u2(m.DescriptorIndex)
		writeAttributes(b, m.Attributes)
	}
}

func writeAttributes(b *builder, attrs []AttributeInfo) {
	b.u2(uint16(len(attrs)))
	for _, a := range attrs {
		b.u2(a.NameIndex)
		b.u4(uint32(len(a.Info)))
		b.bytes(a.Info)
	}
}

// AddUTF8 appends a new UTF8 constant and returns its 1-based index. Used
// by the transform layer to intern bridge-method names it did not read
// from the original class.
func (c *ClassFile) AddUTF8(value string) uint16 {
	c.ConstantPool = append(c.ConstantPool, ConstantPoolEntry{Tag: TagUTF8, UTF8: value})
	return uint16(len(c.ConstantPool) - 1)
}
