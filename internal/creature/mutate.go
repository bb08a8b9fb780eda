package creature

const (
	// MutationChance is the percent chance an offspring's genes change.
	MutationChance = 10
	// NewGeneChance is the percent chance, within a mutation, that the new
	// opcode is appended instead of overwriting an existing gene.
	NewGeneChance = 1
)

// Mutate applies the reproduction mutation policy to genes and returns the
// resulting program and whether it changed shape or content. A full-length
// program is never grown.
func Mutate(genes []Opcode, r Rand) ([]Opcode, bool) {
	if r.Intn(100) >= MutationChance {
		return genes, false
	}
	op := Opcode(r.Intn(NumOpcodes))
	// Drawn even at full length so the number of draws does not depend on
	// the program length.
	roll := r.Intn(100)
	if len(genes) < MaxGenes && roll < NewGeneChance {
		return append(genes, op), true
	}
	genes[r.Intn(len(genes))] = op
	return genes, true
}
