package vm

import (
	"encoding/binary"
	"fmt"
	"io"
)

// LoadImage parses a big-endian binary image from r and lays it into
// mem starting at the origin declared by its first word, per spec.md
// §4.6. Addresses wrap at 16 bits as the cursor advances. A missing
// origin word, or a trailing unpaired byte, fails with ErrNoMoreBytes.
//
// When called once per image file in order, later images overwrite
// overlapping regions of earlier ones, since all images share the same
// Memory.
func LoadImage(r io.Reader, mem *Memory) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoMoreBytes, err)
	}
	if len(data) < 2 {
		return fmt.Errorf("%w: image has no origin word", ErrNoMoreBytes)
	}
	if len(data)%2 != 0 {
		return fmt.Errorf("%w: image ends with a trailing unpaired byte", ErrNoMoreBytes)
	}
	origin := binary.BigEndian.Uint16(data[0:2])
	addr := origin
	for i := 2; i < len(data); i += 2 {
		word := binary.BigEndian.Uint16(data[i : i+2])
		if err := mem.Write(addr, word); err != nil {
			return err
		}
		addr++ // uint16 wraps at 0xFFFF, matching the spec's address wrap
	}
	return nil
}

// LoadImages applies each reader's image to mem in order, so that later
// images overwrite earlier ones where they overlap.
func LoadImages(mem *Memory, readers ...io.Reader) error {
	for _, r := range readers {
		if err := LoadImage(r, mem); err != nil {
			return err
		}
	}
	return nil
}
