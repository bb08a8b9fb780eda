package creature

import (
	"errors"
	"fmt"
	"strings"
)

// Opcode is one gene. The set is closed; Execute switches over it.
type Opcode uint8

const (
	Nop Opcode = iota
	LookForFood
	LookForCreature
	Move
	Eat
	Attack
	Reproduce
	Invert

	NumOpcodes = 8
)

// MaxGenes bounds the length of a gene program.
const MaxGenes = 16

var opcodeNames = [NumOpcodes]string{
	"Nop",
	"LookForFood",
	"LookForCreature",
	"Move",
	"Eat",
	"Attack",
	"Reproduce",
	"Invert",
}

var ErrUnknownOpcode = errors.New("unknown opcode")

func (o Opcode) String() string {
	if int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}
	return fmt.Sprintf("Opcode(%d)", uint8(o))
}

// ParseOpcode resolves an opcode by name, case-insensitively.
func ParseOpcode(name string) (Opcode, error) {
	for i, n := range opcodeNames {
		if strings.EqualFold(n, name) {
			return Opcode(i), nil
		}
	}
	return Nop, fmt.Errorf("%w: %q", ErrUnknownOpcode, name)
}

// ParseGenes resolves a gene program from opcode names. The result must hold
// between 1 and MaxGenes opcodes.
func ParseGenes(names []string) ([]Opcode, error) {
	if len(names) == 0 || len(names) > MaxGenes {
		return nil, fmt.Errorf("gene program length %d outside 1..%d", len(names), MaxGenes)
	}
	genes := make([]Opcode, len(names))
	for i, n := range names {
		op, err := ParseOpcode(n)
		if err != nil {
			return nil, err
		}
		genes[i] = op
	}
	return genes, nil
}

// FormatGenes renders a gene program as a comma separated list of names.
func FormatGenes(genes []Opcode) string {
	var sb strings.Builder
	for i, g := range genes {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(g.String())
	}
	return sb.String()
}
