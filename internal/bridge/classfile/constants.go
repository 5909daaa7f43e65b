// Package classfile implements a minimal reader and writer for the JVM class
// file format (JVM Specification §4), enough for the runtime bridge (C5) to
// locate target classes/methods and splice bridge-method calls into them.
//
// No actively maintained Go library parses JVM class files; this package
// follows the binary-unpacking conventions used elsewhere in the retrieval
// pack for other binary container formats (sequential offset-based reads
// into typed structs, errors propagated rather than panicked).
package classfile

// ConstantTag identifies the kind of a constant_pool entry (JVM spec §4.4).
type ConstantTag uint8

const (
	TagUTF8               ConstantTag = 1
	TagInteger            ConstantTag = 3
	TagFloat              ConstantTag = 4
	TagLong               ConstantTag = 5
	TagDouble             ConstantTag = 6
	TagClass              ConstantTag = 7
	TagString             ConstantTag = 8
	TagFieldref           ConstantTag = 9
	TagMethodref          ConstantTag = 10
	TagInterfaceMethodref ConstantTag = 11
	TagNameAndType        ConstantTag = 12
	TagMethodHandle       ConstantTag = 15
	TagMethodType         ConstantTag = 16
	TagDynamic            ConstantTag = 17
	TagInvokeDynamic      ConstantTag = 18
	TagModule             ConstantTag = 19
	TagPackage            ConstantTag = 20
)

// classMagic is the fixed 4-byte magic number at the start of every class
// file (0xCAFEBABE).
const classMagic uint32 = 0xCAFEBABE

// Access flags relevant to methods (JVM spec §4.6); only the subset the
// bridge layer inspects is named here.
const (
	AccPublic  uint16 = 0x0001
	AccPrivate uint16 = 0x0002
	AccStatic  uint16 = 0x0008
	AccFinal   uint16 = 0x0010
	AccNative  uint16 = 0x0100
	AccAbstract uint16 = 0x0400
)

// wide entries (Long, Double) occupy two constant_pool slots; the slot
// immediately following one is unusable (JVM spec §4.4.5).
func (t ConstantTag) isWide() bool {
	return t == TagLong || t == TagDouble
}
