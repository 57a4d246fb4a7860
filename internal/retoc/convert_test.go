package retoc

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/hostpath"
)

// writeStub installs a fake retoc shell script whose body runs after the
// arguments are recorded in args.txt next to the script.
func writeStub(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stubs need a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "retoc")
	script := "#!/bin/sh\necho \"$@\" > \"$(dirname \"$0\")/args.txt\"\n" + body
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// stubArgs reads back the arguments the stub was invoked with.
func stubArgs(t *testing.T, stubPath string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(filepath.Dir(stubPath), "args.txt"))
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}

func TestTripleFor(t *testing.T) {
	t.Parallel()

	triple := TripleFor(filepath.Join("out", "CoolSkin_9999999_P"))

	assert.Equal(t, filepath.Join("out", "CoolSkin_9999999_P.pak"), triple.Pak)
	assert.Equal(t, filepath.Join("out", "CoolSkin_9999999_P.ucas"), triple.Ucas)
	assert.Equal(t, filepath.Join("out", "CoolSkin_9999999_P.utoc"), triple.Utoc)
	assert.Equal(t, []string{triple.Pak, triple.Ucas, triple.Utoc}, triple.Paths())
}

func TestConvert_ProducesTriple(t *testing.T) {
	t.Parallel()

	tool := writeStub(t, `
utoc="$5"
base="${utoc%.utoc}"
printf 'utoc-bytes' > "$utoc"
printf 'ucas-bytes' > "${base}.ucas"
printf 'pak-bytes' > "${base}.pak"
`)

	outDir := t.TempDir()
	stageDir := t.TempDir()
	inv := Invocation{
		Tool:       tool,
		Version:    "UE5_3",
		StageDir:   stageDir,
		OutputBase: filepath.Join(outDir, "CoolSkin_9999999_P"),
	}

	triple, err := Convert(context.Background(), hostpath.New(), inv, io.Discard, io.Discard)
	require.NoError(t, err)

	for _, path := range triple.Paths() {
		info, statErr := os.Stat(path)
		require.NoError(t, statErr, "expected %s to exist", path)
		assert.Positive(t, info.Size())
	}

	// The subcommand contract: to-zen --version <tag> <stage> <utoc>.
	assert.Equal(t,
		strings.Join([]string{"to-zen", "--version", "UE5_3", stageDir, triple.Utoc}, " "),
		stubArgs(t, tool))
}

func TestConvert_NonZeroExit(t *testing.T) {
	t.Parallel()

	tool := writeStub(t, "exit 3\n")

	inv := Invocation{
		Tool:       tool,
		Version:    "UE5_3",
		StageDir:   t.TempDir(),
		OutputBase: filepath.Join(t.TempDir(), "Mod_9999999_P"),
	}

	_, err := Convert(context.Background(), hostpath.New(), inv, io.Discard, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retoc failed")
}

func TestConvert_MissingOutputMember(t *testing.T) {
	t.Parallel()

	// Exits cleanly but only writes two of the three files.
	tool := writeStub(t, `
utoc="$5"
base="${utoc%.utoc}"
printf 'utoc-bytes' > "$utoc"
printf 'ucas-bytes' > "${base}.ucas"
`)

	inv := Invocation{
		Tool:       tool,
		Version:    "UE5_3",
		StageDir:   t.TempDir(),
		OutputBase: filepath.Join(t.TempDir(), "Mod_9999999_P"),
	}

	_, err := Convert(context.Background(), hostpath.New(), inv, io.Discard, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retoc reported success but")
	assert.Contains(t, err.Error(), ".pak is missing")
}

func TestConvert_EmptyOutputMember(t *testing.T) {
	t.Parallel()

	tool := writeStub(t, `
utoc="$5"
base="${utoc%.utoc}"
printf 'utoc-bytes' > "$utoc"
printf 'ucas-bytes' > "${base}.ucas"
: > "${base}.pak"
`)

	inv := Invocation{
		Tool:       tool,
		Version:    "UE5_3",
		StageDir:   t.TempDir(),
		OutputBase: filepath.Join(t.TempDir(), "Mod_9999999_P"),
	}

	_, err := Convert(context.Background(), hostpath.New(), inv, io.Discard, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retoc produced an empty")
}

func TestConvert_StreamsToolOutput(t *testing.T) {
	t.Parallel()

	tool := writeStub(t, `
echo "packing chunks"
echo "warning: cooked for a newer build" >&2
utoc="$5"
base="${utoc%.utoc}"
printf 'u' > "$utoc"; printf 'u' > "${base}.ucas"; printf 'p' > "${base}.pak"
`)

	inv := Invocation{
		Tool:       tool,
		Version:    "UE5_3",
		StageDir:   t.TempDir(),
		OutputBase: filepath.Join(t.TempDir(), "Mod_9999999_P"),
	}

	var out, errOut strings.Builder
	_, err := Convert(context.Background(), hostpath.New(), inv, &out, &errOut)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "packing chunks")
	assert.Contains(t, errOut.String(), "warning: cooked for a newer build")
}
