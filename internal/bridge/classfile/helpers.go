package classfile

import "strings"

// ResolveUTF8 is the exported form of resolveUTF8, for callers outside this
// package (the transform layer needs to read attribute names).
func ResolveUTF8(c *ClassFile, index uint16) (string, error) {
	return c.resolveUTF8(index)
}

// FindMethodref searches the constant pool for a CONSTANT_Methodref whose
// name matches methodSpec, given either bare "methodName" (matches any
// descriptor) or "methodName(descriptor)". It returns the 1-based constant
// pool index of the first match.
func FindMethodref(c *ClassFile, methodSpec string) (uint16, error) {
	wantName, wantDesc, hasDesc := splitMethodSpec(methodSpec)

	for i, entry := range c.ConstantPool {
		if entry.Tag != TagMethodref && entry.Tag != TagInterfaceMethodref {
			continue
		}
		if int(entry.NameAndTypeIndex) >= len(c.ConstantPool) {
			continue
		}
		nat := c.ConstantPool[entry.NameAndTypeIndex]
		if nat.Tag != TagNameAndType {
			continue
		}
		name, err := c.resolveUTF8(nat.NameIndex)
		if err != nil {
			continue
		}
		if name != wantName {
			continue
		}
		if hasDesc {
			desc, err := c.resolveUTF8(nat.DescriptorIndex)
			if err != nil || desc != wantDesc {
				continue
			}
		}
		return uint16(i), nil
	}

	return 0, &MalformedClassError{Reason: "no Methodref found for " + methodSpec}
}

func splitMethodSpec(spec string) (name, descriptor string, hasDescriptor bool) {
	if idx := strings.IndexByte(spec, '('); idx >= 0 {
		return spec[:idx], spec[idx:], true
	}
	return spec, "", false
}

// InternMethodref finds or adds the CONSTANT_Class, CONSTANT_NameAndType,
// and CONSTANT_Methodref entries needed to reference
// className.methodName(descriptor), returning the Methodref's index.
func InternMethodref(c *ClassFile, className, methodName, descriptor string) uint16 {
	classIdx := internClass(c, className)
	natIdx := internNameAndType(c, methodName, descriptor)

	for i, entry := range c.ConstantPool {
		if entry.Tag == TagMethodref && entry.ClassIndex == classIdx && entry.NameAndTypeIndex == natIdx {
			return uint16(i)
		}
	}

	c.ConstantPool = append(c.ConstantPool, ConstantPoolEntry{
		Tag:              TagMethodref,
		ClassIndex:       classIdx,
		NameAndTypeIndex: natIdx,
	})
	return uint16(len(c.ConstantPool) - 1)
}

func internClass(c *ClassFile, className string) uint16 {
	for i, entry := range c.ConstantPool {
		if entry.Tag == TagClass {
			if name, err := c.resolveUTF8(entry.NameIndex); err == nil && name == className {
				return uint16(i)
			}
		}
	}
	nameIdx := c.AddUTF8(className)
	c.ConstantPool = append(c.ConstantPool, ConstantPoolEntry{Tag: TagClass, NameIndex: nameIdx})
	return uint16(len(c.ConstantPool) - 1)
}

func internNameAndType(c *ClassFile, name, descriptor string) uint16 {
	for i, entry := range c.ConstantPool {
		if entry.Tag == TagNameAndType {
			n, err1 := c.resolveUTF8(entry.NameIndex)
			d, err2 := c.resolveUTF8(entry.DescriptorIndex)
			if err1 == nil && err2 == nil && n == name && d == descriptor {
				return uint16(i)
			}
		}
	}
	nameIdx := c.AddUTF8(name)
	descIdx := c.AddUTF8(descriptor)
	c.ConstantPool = append(c.ConstantPool, ConstantPoolEntry{Tag: TagNameAndType, NameIndex: nameIdx, DescriptorIndex: descIdx})
	return uint16(len(c.ConstantPool) - 1)
}
