package transform

// codeAttribute is the parsed form of a method's "Code" attribute body
// (JVM spec §4.7.3): max_stack/max_locals, the raw instruction bytes, the
// exception table, and any nested attributes (LineNumberTable and similar,
// which splicing leaves untouched and therefore stale — acceptable for a
// bridge layer that does not claim debug-info fidelity).
type codeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []exceptionTableEntry
	// trailingAttrs holds the remaining nested attributes verbatim; they
	// are copied through unmodified on re-encode.
	trailingAttrs []byte
}

type exceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

func parseCodeAttribute(raw []byte) (*codeAttribute, error) {
	c := &codeWalker{data: raw}

	ca := &codeAttribute{}
	var err error
	if ca.MaxStack, err = c.u2(); err != nil {
		return nil, err
	}
	if ca.MaxLocals, err = c.u2(); err != nil {
		return nil, err
	}
	codeLen, err := c.u4()
	if err != nil {
		return nil, err
	}
	if ca.Code, err = c.bytes(int(codeLen)); err != nil {
		return nil, err
	}
	// copy out of the shared buffer before further mutation.
	ca.Code = append([]byte(nil), ca.Code...)

	excCount, err := c.u2()
	if err != nil {
		return nil, err
	}
	ca.ExceptionTable = make([]exceptionTableEntry, excCount)
	for i := range ca.ExceptionTable {
		if ca.ExceptionTable[i].StartPC, err = c.u2(); err != nil {
			return nil, err
		}
		if ca.ExceptionTable[i].EndPC, err = c.u2(); err != nil {
			return nil, err
		}
		if ca.ExceptionTable[i].HandlerPC, err = c.u2(); err != nil {
			return nil, err
		}
		if ca.ExceptionTable[i].CatchType, err = c.u2(); err != nil {
			return nil, err
		}
	}

	// Remaining bytes are the nested attributes_count + attribute_info[],
	// left opaque.
	ca.trailingAttrs = append([]byte(nil), c.data[c.off:]...)

	return ca, nil
}

func (ca *codeAttribute) encode() []byte {
	var buf []byte
	u2 := func(v uint16) { buf = append(buf, byte(v>>8), byte(v)) }
	u2(ca.MaxStack)
	u2(ca.MaxLocals)
	n := uint32(len(ca.Code))
	buf = append(buf, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	buf = append(buf, ca.Code...)
	u2(uint16(len(ca.ExceptionTable)))
	for _, e := range ca.ExceptionTable {
		u2(e.StartPC)
		u2(e.EndPC)
		u2(e.HandlerPC)
		u2(e.CatchType)
	}
	buf = append(buf, ca.trailingAttrs...)
	return buf
}

// prepend splices extra bytes before ca.Code's first instruction, shifting
// every exception table entry's pc fields so they still bracket the same
// original instructions (JVM spec §4.7.3 exception_table semantics).
func (ca *codeAttribute) prepend(extra []byte) {
	ca.Code = append(append([]byte(nil), extra...), ca.Code...)
	shift := uint16(len(extra))
	for i := range ca.ExceptionTable {
		ca.ExceptionTable[i].StartPC += shift
		ca.ExceptionTable[i].EndPC += shift
		ca.ExceptionTable[i].HandlerPC += shift
	}
	if needed := uint16(1); ca.MaxStack < needed {
		ca.MaxStack = needed
	}
}

// insertAt splices extra bytes into ca.Code at byte offset pc, shifting
// any exception table entries whose bounds lie at or after pc.
func (ca *codeAttribute) insertAt(pc int, extra []byte) {
	out := make([]byte, 0, len(ca.Code)+len(extra))
	out = append(out, ca.Code[:pc]...)
	out = append(out, extra...)
	out = append(out, ca.Code[pc:]...)
	ca.Code = out

	shift := uint16(len(extra))
	p := uint16(pc)
	for i := range ca.ExceptionTable {
		e := &ca.ExceptionTable[i]
		if e.StartPC >= p {
			e.StartPC += shift
		}
		if e.EndPC >= p {
			e.EndPC += shift
		}
		if e.HandlerPC >= p {
			e.HandlerPC += shift
		}
	}
	if needed := uint16(1); ca.MaxStack < needed {
		ca.MaxStack = needed
	}
}

// codeWalker is a tiny big-endian cursor local to this file, kept separate
// from classfile.cursor since the Code attribute body is parsed from an
// already-extracted []byte rather than the whole class file stream.
type codeWalker struct {
	data []byte
	off  int
}

func (c *codeWalker) u2() (uint16, error) {
	if c.off+2 > len(c.data) {
		return 0, errTruncatedSwitch
	}
	v := uint16(c.data[c.off])<<8 | uint16(c.data[c.off+1])
	c.off += 2
	return v, nil
}

func (c *codeWalker) u4() (uint32, error) {
	if c.off+4 > len(c.data) {
		return 0, errTruncatedSwitch
	}
	v := uint32(c.data[c.off])<<24 | uint32(c.data[c.off+1])<<16 | uint32(c.data[c.off+2])<<8 | uint32(c.data[c.off+3])
	c.off += 4
	return v, nil
}

func (c *codeWalker) bytes(n int) ([]byte, error) {
	if c.off+n > len(c.data) {
		return nil, errTruncatedSwitch
	}
	v := c.data[c.off : c.off+n]
	c.off += n
	return v, nil
}

// findInvokeSites returns the byte offsets of every invoke* instruction in
// code that references constant-pool index methodrefIndex.
func findInvokeSites(code []byte, methodrefIndex uint16) ([]int, error) {
	var sites []int
	pc := 0
	for pc < len(code) {
		op := code[pc]
		length, err := instrLength(code, pc)
		if err != nil {
			return nil, err
		}
		switch op {
		case opInvokevirtual, opInvokespecial, opInvokestatic, opInvokeinterf:
			if pc+3 <= len(code) {
				idx := uint16(code[pc+1])<<8 | uint16(code[pc+2])
				if idx == methodrefIndex {
					sites = append(sites, pc)
				}
			}
		}
		pc += length
	}
	return sites, nil
}

// returnSites returns the byte offsets of every return-family instruction
// in code (JVM spec §3.12).
func returnSites(code []byte) ([]int, error) {
	var sites []int
	pc := 0
	for pc < len(code) {
		op := code[pc]
		length, err := instrLength(code, pc)
		if err != nil {
			return nil, err
		}
		if isReturnOpcode(op) {
			sites = append(sites, pc)
		}
		pc += length
	}
	return sites, nil
}
