package creature

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// GenomeID identifies a gene program by content; identical programs share it.
type GenomeID uint64

func (id GenomeID) String() string { return fmt.Sprintf("%016x", uint64(id)) }

// Fingerprint hashes a gene program into its GenomeID.
func Fingerprint(genes []Opcode) GenomeID {
	buf := make([]byte, len(genes))
	for i, g := range genes {
		buf[i] = byte(g)
	}
	sum := blake2b.Sum256(buf)
	return GenomeID(binary.LittleEndian.Uint64(sum[:8]))
}
