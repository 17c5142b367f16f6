package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTheoryToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"GroupTheory", "group_theory"},
		{"RingTheory", "ring_theory"},
		{"group_theory", "group_theory"},
		{"Topology", "topology"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, TheoryToken(tc.in), tc.in)
	}
}

func TestTheoryFileName(t *testing.T) {
	assert.Equal(t, "group_theory.definitions", TheoryFileName("GroupTheory", FileDefinitions))
	assert.Equal(t, "group_theory.theorems", TheoryFileName("GroupTheory", FileTheorems))
}

func TestTheorySnapshot_FileLookup(t *testing.T) {
	snap := TheorySnapshot{
		Theory: "GroupTheory",
		Files: []TheoryFile{
			{Name: "group_theory.definitions", Documents: []ContentDocument{
				{ID: "group_theory.def.generic_group"},
				{ID: "group_theory.def.cyclic_group"},
			}},
		},
	}

	f := snap.File("group_theory.definitions")
	assert.NotNil(t, f)
	assert.Nil(t, snap.File("group_theory.theorems"))

	assert.Equal(t, []string{
		"group_theory.def.generic_group",
		"group_theory.def.cyclic_group",
	}, f.IDs())

	assert.NotNil(t, f.Document("group_theory.def.cyclic_group"))
	assert.Nil(t, f.Document("group_theory.def.dihedral_group"))
}
