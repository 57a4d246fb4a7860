package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	s := Default()

	assert.Equal(t, "./converted_mods", s.OutputDir)
	assert.Equal(t, "UE5_3", s.Version)
	assert.Equal(t, "Marvel", s.ProjectName)
	assert.Contains(t, s.ModsDir, `~mods`)
	assert.Empty(t, s.RetocPath, "no pinned binary by default")
	assert.NotEmpty(t, s.RetocCandidates)
	assert.Equal(t, []string{".uasset", ".uexp", ".ubulk"}, s.AssetExtensions)
	assert.Equal(t, []string{".uasset", ".uexp"}, s.PatchExtensions)
}

func TestApply_OverridesNonEmptyFields(t *testing.T) {
	t.Parallel()

	s := Default()
	s.Apply(&File{
		OutputDir:       "/out",
		Version:         "UE5_4",
		RetocCandidates: []string{"/opt/retoc"},
	})

	assert.Equal(t, "/out", s.OutputDir)
	assert.Equal(t, "UE5_4", s.Version)
	assert.Equal(t, []string{"/opt/retoc"}, s.RetocCandidates)

	// Fields the file leaves empty keep their defaults.
	assert.Equal(t, "Marvel", s.ProjectName)
	assert.Contains(t, s.ModsDir, "MarvelRivals")
}

func TestApply_NilFile(t *testing.T) {
	t.Parallel()

	s := Default()
	s.Apply(nil)

	assert.Equal(t, Default(), s)
}
