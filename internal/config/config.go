package config

// Settings is the converter's tunable configuration: every field has a
// built-in default, may be overridden by an optional HCL file, and is finally
// overridden by command-line flags. It is constructed once at startup and
// passed explicitly to the stages that need it.
type Settings struct {
	// OutputDir is where the converted container triple is written.
	OutputDir string

	// Version is the engine version tag handed to retoc. The default is an
	// opaque constant tied to the game client's engine build.
	Version string

	// ProjectName is the folder the content root is staged under. retoc
	// derives the container's internal paths from it, so it must match the
	// project name the game expects.
	ProjectName string

	// ModsDir is where --install places the converted files. The default is
	// the game's usual Steam install location, expressed in the Windows
	// convention and translated to the native one at startup.
	ModsDir string

	// RetocPath pins the converter binary explicitly. Empty means probe
	// RetocCandidates and then the search path.
	RetocPath string

	// RetocCandidates are well-known locations probed in order when
	// RetocPath is empty.
	RetocCandidates []string

	// AssetExtensions are the file extensions that mark a directory tree as
	// holding loose assets. At least one such file must exist under the
	// input.
	AssetExtensions []string

	// PatchExtensions are the serialized-asset extensions whose contents the
	// retargeter rewrites.
	PatchExtensions []string
}

// Default returns the built-in Settings.
func Default() *Settings {
	return &Settings{
		OutputDir:   "./converted_mods",
		Version:     "UE5_3",
		ProjectName: "Marvel",
		ModsDir:     `C:\Program Files (x86)\Steam\steamapps\common\MarvelRivals\MarvelGame\Marvel\Content\Paks\~mods`,
		RetocCandidates: []string{
			"./retoc.exe",
			"./retoc",
			"./tools/retoc/retoc.exe",
			`C:\tools\retoc\retoc.exe`,
		},
		AssetExtensions: []string{".uasset", ".uexp", ".ubulk"},
		PatchExtensions: []string{".uasset", ".uexp"},
	}
}

// Apply folds non-empty values from an overrides file into the settings.
func (s *Settings) Apply(f *File) {
	if f == nil {
		return
	}
	if f.OutputDir != "" {
		s.OutputDir = f.OutputDir
	}
	if f.Version != "" {
		s.Version = f.Version
	}
	if f.ProjectName != "" {
		s.ProjectName = f.ProjectName
	}
	if f.ModsDir != "" {
		s.ModsDir = f.ModsDir
	}
	if f.RetocPath != "" {
		s.RetocPath = f.RetocPath
	}
	if len(f.RetocCandidates) > 0 {
		s.RetocCandidates = f.RetocCandidates
	}
}
