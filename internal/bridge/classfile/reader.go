package classfile

import "math"

// Parse decodes a class file from data (JVM spec §4.1). It validates the
// magic number and every constant_pool/attribute length it reads, but does
// not interpret attribute contents beyond the ones named in AttributeInfo.
func Parse(data []byte) (*ClassFile, error) {
	c := newCursor(data)

	magic, err := c.u4()
	if err != nil {
		return nil, err
	}
	if magic != classMagic {
		return nil, &MalformedClassError{Reason: "bad magic number, not a class file"}
	}

	cf := &ClassFile{}
	if cf.MinorVersion, err = c.u2(); err != nil {
		return nil, err
	}
	if cf.MajorVersion, err = c.u2(); err != nil {
		return nil, err
	}

	if cf.ConstantPool, err = readConstantPool(c); err != nil {
		return nil, err
	}
	if cf.AccessFlags, err = c.u2(); err != nil {
		return nil, err
	}
	if cf.ThisClass, err = c.u2(); err != nil {
		return nil, err
	}
	if cf.SuperClass, err = c.u2(); err != nil {
		return nil, err
	}

	interfaceCount, err := c.u2()
	if err != nil {
		return nil, err
	}
	cf.Interfaces = make([]uint16, interfaceCount)
	for i := range cf.Interfaces {
		if cf.Interfaces[i], err = c.u2(); err != nil {
			return nil, err
		}
	}

	if cf.Fields, err = readMembers(c); err != nil {
		return nil, err
	}
	if cf.Methods, err = readMembers(c); err != nil {
		return nil, err
	}
	if cf.Attributes, err = readAttributes(c); err != nil {
		return nil, err
	}

	return cf, nil
}

// readConstantPool reads the constant_pool table. Entry 0 is left zeroed
// (unused, per spec); Long/Double entries consume two slots, the second of
// which is left zeroed too (JVM spec §4.4.5).
func readConstantPool(c *cursor) ([]ConstantPoolEntry, error) {
	count, err := c.u2()
	if err != nil {
		return nil, err
	}
	pool := make([]ConstantPoolEntry, count)

	for i := 1; i < int(count); i++ {
		tagByte, err := c.u1()
		if err != nil {
			return nil, err
		}
		tag := ConstantTag(tagByte)
		entry := ConstantPoolEntry{Tag: tag}

		switch tag {
		case TagUTF8:
			length, err := c.u2()
			if err != nil {
				return nil, err
			}
			raw, err := c.bytes(int(length))
			if err != nil {
				return nil, err
			}
			entry.UTF8 = string(raw)
		case TagInteger:
			v, err := c.u4()
			if err != nil {
				return nil, err
			}
			entry.Int32 = int32(v)
		case TagFloat:
			v, err := c.u4()
			if err != nil {
				return nil, err
			}
			entry.Float32 = math.Float32frombits(v)
		case TagLong:
			v, err := c.u8()
			if err != nil {
				return nil, err
			}
			entry.Int64 = int64(v)
		case TagDouble:
			v, err := c.u8()
			if err != nil {
				return nil, err
			}
			entry.Float64 = math.Float64frombits(v)
		case TagClass, TagString, TagMethodType, TagModule, TagPackage:
			if entry.NameIndex, err = c.u2(); err != nil {
				return nil, err
			}
		case TagFieldref, TagMethodref, TagInterfaceMethodref:
			if entry.ClassIndex, err = c.u2(); err != nil {
				return nil, err
			}
			if entry.NameAndTypeIndex, err = c.u2(); err != nil {
				return nil, err
			}
		case TagNameAndType:
			if entry.NameIndex, err = c.u2(); err != nil {
				return nil, err
			}
			if entry.DescriptorIndex, err = c.u2(); err != nil {
				return nil, err
			}
		case TagMethodHandle:
			if entry.ReferenceKind, err = c.u1(); err != nil {
				return nil, err
			}
			if entry.ReferenceIndex, err = c.u2(); err != nil {
				return nil, err
			}
		case TagDynamic, TagInvokeDynamic:
			if entry.BootstrapMethodAttrIndex, err = c.u2(); err != nil {
				return nil, err
			}
			if entry.NameAndTypeIndex, err = c.u2(); err != nil {
				return nil, err
			}
		default:
			return nil, &MalformedClassError{Reason: "unknown constant pool tag"}
		}

		pool[i] = entry
		if tag.isWide() {
			i++ // the following slot is unused
		}
	}

	return pool, nil
}

func readMembers(c *cursor) ([]MemberInfo, error) {
	count, err := c.u2()
	if err != nil {
		return nil, err
	}
	members := make([]MemberInfo, count)
	for i := range members {
		if members[i].AccessFlags, err = c.u2(); err != nil {
			return nil, err
		}
		if members[i].NameIndex, err = c.u2(); err != nil {
			return nil, err
		}
		if members[i].DescriptorIndex, err = c.u2(); err != nil {
			return nil, err
		}
		if members[i].Attributes, err = readAttributes(c); err != nil {
			return nil, err
		}
	}
	return members, nil
}

func readAttributes(c *cursor) ([]AttributeInfo, error) {
	count, err := c.u2()
	if err != nil {
		return nil, err
	}
	attrs := make([]AttributeInfo, count)
	for i := range attrs {
		if attrs[i].NameIndex, err = c.u2(); err != nil {
			return nil, err
		}
		length, err := c.u4()
		if err != nil {
			return nil, err
		}
		raw, err := c.bytes(int(length))
		if err != nil {
			return nil, err
		}
		// copy out of the shared buffer: the cursor's backing array may be
		// reused by other readers of the same archive entry.
		attrs[i].Info = append([]byte(nil), raw...)
	}
	return attrs, nil
}
