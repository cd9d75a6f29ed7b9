package model

import (
	"bytes"
	"encoding/binary"
	"log"
)

// rawBytes writes a fixed size value (or slice of such values) as its little endian byte
// representation. This is what gets copied into mapped device memory.
func rawBytes(p any) []byte {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, p); err != nil {
		log.Panicf("Failed to serialize %T: %v", p, err)
	}
	return buf.Bytes()
}
