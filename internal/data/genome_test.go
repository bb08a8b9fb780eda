package data

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/genelife/genelife/internal/creature"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genomes.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuiltinGrazer(t *testing.T) {
	tbl := NewGenomeTable()
	genes, err := tbl.Get(DefaultGenome)
	if err != nil {
		t.Fatal(err)
	}
	if creature.FormatGenes(genes) != "Eat,Reproduce" {
		t.Errorf("grazer = %s", creature.FormatGenes(genes))
	}
	// Callers get a copy.
	genes[0] = creature.Attack
	again, _ := tbl.Get(DefaultGenome)
	if again[0] != creature.Eat {
		t.Error("Get returned the table's own slice")
	}
}

func TestLoadGenomeTable(t *testing.T) {
	path := writeYAML(t, `
genomes:
  - name: hunter
    genes: [LookForCreature, Attack, Move, Reproduce]
  - name: grazer
    genes: [Eat, Eat, Reproduce]
`)
	tbl, err := LoadGenomeTable(path)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Count() != 2 {
		t.Errorf("Count = %d, want 2", tbl.Count())
	}
	hunter, err := tbl.Get("hunter")
	if err != nil {
		t.Fatal(err)
	}
	if creature.Classify(hunter) != creature.Carnivore {
		t.Errorf("hunter classified %s", creature.Classify(hunter))
	}
	grazer, _ := tbl.Get("grazer")
	if len(grazer) != 3 {
		t.Errorf("file entry did not replace the built-in grazer: %s", creature.FormatGenes(grazer))
	}
	names := tbl.Names()
	if len(names) != 2 || names[0] != "grazer" || names[1] != "hunter" {
		t.Errorf("Names = %v", names)
	}
}

func TestLoadGenomeTableErrors(t *testing.T) {
	tests := map[string]string{
		"unknown opcode": "genomes:\n  - name: x\n    genes: [Fly]\n",
		"empty program":  "genomes:\n  - name: x\n    genes: []\n",
		"missing name":   "genomes:\n  - genes: [Eat]\n",
		"bad yaml":       "genomes: [\n",
	}
	for name, body := range tests {
		if _, err := LoadGenomeTable(writeYAML(t, body)); err == nil {
			t.Errorf("%s: accepted", name)
		}
	}
	if _, err := LoadGenomeTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := NewGenomeTable().Get("nobody")
	if !errors.Is(err, ErrUnknownGenome) {
		t.Errorf("err = %v", err)
	}
}

func TestShippedGenomes(t *testing.T) {
	tbl, err := LoadGenomeTable(filepath.Join("..", "..", "data", "yaml", "genomes.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"grazer", "forager", "hunter", "scavenger", "idler"} {
		if _, err := tbl.Get(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}
