package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing pipeline and log output
// in tests. The progress bars repaint from their own goroutine, so a plain
// bytes.Buffer would race.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// setupAppTest creates a new app instance for system testing, with all
// output captured in the returned buffer.
func setupAppTest(t *testing.T, opts *Options) (*App, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	opts.LogLevel = "debug"
	testApp, err := NewApp(context.Background(), buf, buf, opts)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("MODCONV_TEST_LOGS") == "true" {
			t.Logf("--- Full output for %s ---\n%s", t.Name(), buf.String())
		}
	})

	return testApp, buf
}

// writeTestFile writes contents to path, creating parent directories.
func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

// buildLooseMod lays out a minimal loose-asset mod folder and returns its
// root. The root contains a Content folder with a couple of cooked assets.
func buildLooseMod(t *testing.T, name string) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), name)
	writeTestFile(t, filepath.Join(root, "Content", "Characters", "Hero", "Hero.uasset"), "asset-data")
	writeTestFile(t, filepath.Join(root, "Content", "Characters", "Hero", "Hero.uexp"), "exp-data")
	writeTestFile(t, filepath.Join(root, "Content", "readme.txt"), "notes")
	return root
}

// writeStubRetoc installs a fake retoc shell script into dir. The script
// writes the expected .utoc/.ucas/.pak triple next to the requested output
// and records its arguments in args.txt for assertions.
func writeStubRetoc(t *testing.T, dir string) string {
	t.Helper()

	script := filepath.Join(dir, "retoc")
	body := `#!/bin/sh
echo "$@" > "$(dirname "$0")/args.txt"
utoc="$5"
base="${utoc%.utoc}"
printf 'zen-utoc' > "$utoc"
printf 'zen-ucas' > "${base}.ucas"
printf 'zen-pak' > "${base}.pak"
`
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return script
}
