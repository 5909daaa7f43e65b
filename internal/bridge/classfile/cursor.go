package classfile

import "fmt"

// cursor sequentially unpacks big-endian fields from a class file buffer,
// the layout the JVM spec mandates for every multi-byte field.
type cursor struct {
	data []byte
	off  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) require(n int) error {
	if c.off+n > len(c.data) {
		return &MalformedClassError{Reason: fmt.Sprintf("unexpected end of data at offset %d, need %d more bytes", c.off, n)}
	}
	return nil
}

func (c *cursor) u1() (uint8, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	v := c.data[c.off]
	c.off++
	return v, nil
}

func (c *cursor) u2() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := uint16(c.data[c.off])<<8 | uint16(c.data[c.off+1])
	c.off += 2
	return v, nil
}

func (c *cursor) u4() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := uint32(c.data[c.off])<<24 | uint32(c.data[c.off+1])<<16 | uint32(c.data[c.off+2])<<8 | uint32(c.data[c.off+3])
	c.off += 4
	return v, nil
}

func (c *cursor) u8() (uint64, error) {
	hi, err := c.u4()
	if err != nil {
		return 0, err
	}
	lo, err := c.u4()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	v := c.data[c.off : c.off+n]
	c.off += n
	return v, nil
}
