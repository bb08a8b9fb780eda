package data

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/genelife/genelife/internal/creature"
	"gopkg.in/yaml.v3"
)

// DefaultGenome is the program seeded when no table is available.
const DefaultGenome = "grazer"

var ErrUnknownGenome = errors.New("unknown genome preset")

// GenomePreset is a named starting gene program.
type GenomePreset struct {
	Name        string
	Description string
	Genes       []creature.Opcode
}

type genomeEntry struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Genes       []string `yaml:"genes"`
}

type genomeListFile struct {
	Genomes []genomeEntry `yaml:"genomes"`
}

// GenomeTable holds seed programs indexed by name.
type GenomeTable struct {
	presets map[string]*GenomePreset
}

// NewGenomeTable returns a table holding only the built-in grazer program
// (Eat, Reproduce).
func NewGenomeTable() *GenomeTable {
	return &GenomeTable{presets: map[string]*GenomePreset{
		DefaultGenome: {
			Name:        DefaultGenome,
			Description: "eats, then reproduces",
			Genes:       []creature.Opcode{creature.Eat, creature.Reproduce},
		},
	}}
}

// Get returns a copy of the named program.
func (t *GenomeTable) Get(name string) ([]creature.Opcode, error) {
	p, ok := t.presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenome, name)
	}
	genes := make([]creature.Opcode, len(p.Genes))
	copy(genes, p.Genes)
	return genes, nil
}

// Names returns every preset name in sorted order.
func (t *GenomeTable) Names() []string {
	names := make([]string, 0, len(t.presets))
	for n := range t.presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of presets.
func (t *GenomeTable) Count() int {
	return len(t.presets)
}

// LoadGenomeTable loads seed programs from a YAML file on top of the built-in
// grazer. A file entry with the same name replaces the built-in.
func LoadGenomeTable(path string) (*GenomeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genomes: %w", err)
	}
	var f genomeListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse genomes: %w", err)
	}
	t := NewGenomeTable()
	for _, entry := range f.Genomes {
		if entry.Name == "" {
			return nil, fmt.Errorf("parse genomes: entry without a name")
		}
		genes, err := creature.ParseGenes(entry.Genes)
		if err != nil {
			return nil, fmt.Errorf("genome %q: %w", entry.Name, err)
		}
		t.presets[entry.Name] = &GenomePreset{
			Name:        entry.Name,
			Description: entry.Description,
			Genes:       genes,
		}
	}
	return t, nil
}
