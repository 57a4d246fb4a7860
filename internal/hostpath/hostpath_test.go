package hostpath

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linuxTranslator builds a Translator pinned to a Linux host with no wslpath
// and no distro, so tests exercise the pure string mappings.
func linuxTranslator() *Translator {
	return &Translator{goos: "linux"}
}

// stubWSLPath writes a fake wslpath script that always prints reply.
func stubWSLPath(t *testing.T, reply string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stubs need a POSIX shell")
	}

	script := filepath.Join(t.TempDir(), "wslpath")
	body := "#!/bin/sh\nprintf '%s\\n' '" + reply + "'\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return script
}

func TestIsForeign(t *testing.T) {
	t.Parallel()
	tr := linuxTranslator()

	assert.True(t, tr.IsForeign(`C:\Users\Me\mod`))
	assert.True(t, tr.IsForeign(`c:/steam/mods`))
	assert.True(t, tr.IsForeign(`\\wsl.localhost\Ubuntu\home`))
	assert.False(t, tr.IsForeign("/home/me/mod"))
	assert.False(t, tr.IsForeign("relative/path"))
}

func TestIsForeign_OnWindowsHost(t *testing.T) {
	t.Parallel()
	tr := &Translator{goos: "windows"}

	// On Windows every path is already in the host convention.
	assert.False(t, tr.IsForeign(`C:\Users\Me\mod`))
	assert.False(t, tr.IsForeign(`\\server\share`))
}

func TestToNative_PassThrough(t *testing.T) {
	t.Parallel()
	tr := linuxTranslator()

	got, err := tr.ToNative("/home/me/mods/CoolSkin")
	require.NoError(t, err)
	assert.Equal(t, "/home/me/mods/CoolSkin", got)
}

func TestToNative_DriveFallback(t *testing.T) {
	t.Parallel()
	tr := linuxTranslator()

	got, err := tr.ToNative(`C:\Users\Me\Downloads\CoolSkin.zip`)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/c/Users/Me/Downloads/CoolSkin.zip", got)

	got, err = tr.ToNative(`d:/mods/skin`)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/d/mods/skin", got)
}

func TestToNative_UNCNeedsWSLPath(t *testing.T) {
	t.Parallel()
	tr := linuxTranslator()

	_, err := tr.ToNative(`\\wsl.localhost\Ubuntu\home\me`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wslpath is not available")
}

func TestToNative_PrefersWSLPath(t *testing.T) {
	t.Parallel()

	tr := linuxTranslator()
	tr.wslpath = stubWSLPath(t, "/mnt/c/from-wslpath")

	got, err := tr.ToNative(`C:\anything`)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/c/from-wslpath", got)
}

func TestToWindows_MountFallback(t *testing.T) {
	t.Parallel()
	tr := linuxTranslator()
	tr.distro = "Ubuntu"

	got, err := tr.ToWindows("/mnt/c/Tools/retoc/retoc.exe")
	require.NoError(t, err)
	assert.Equal(t, `C:\Tools\retoc\retoc.exe`, got)

	got, err = tr.ToWindows("/mnt/d")
	require.NoError(t, err)
	assert.Equal(t, `D:\`, got)
}

func TestToWindows_DistroFallback(t *testing.T) {
	t.Parallel()
	tr := linuxTranslator()
	tr.distro = "Ubuntu"

	// Paths outside /mnt live on the WSL filesystem and are reachable from
	// the Windows side through the wsl.localhost share.
	got, err := tr.ToWindows("/tmp/rivals-mod-stage-123")
	require.NoError(t, err)
	assert.Equal(t, `\\wsl.localhost\Ubuntu\tmp\rivals-mod-stage-123`, got)
}

func TestToWindows_DrivePassThrough(t *testing.T) {
	t.Parallel()
	tr := linuxTranslator()

	got, err := tr.ToWindows(`C:\already\windows`)
	require.NoError(t, err)
	assert.Equal(t, `C:\already\windows`, got)
}

func TestToWindows_NoRoute(t *testing.T) {
	t.Parallel()
	tr := linuxTranslator()

	_, err := tr.ToWindows("/tmp/stage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "install wslpath or set WSL_DISTRO_NAME")
}

func TestToWindows_PrefersWSLPath(t *testing.T) {
	t.Parallel()

	tr := linuxTranslator()
	tr.wslpath = stubWSLPath(t, `C:\stubbed\answer`)

	got, err := tr.ToWindows("/tmp/stage")
	require.NoError(t, err)
	assert.Equal(t, `C:\stubbed\answer`, got)
}

func TestToolRequiresWindowsPaths(t *testing.T) {
	t.Parallel()

	linux := linuxTranslator()
	assert.True(t, linux.ToolRequiresWindowsPaths("/opt/tools/retoc.exe"))
	assert.True(t, linux.ToolRequiresWindowsPaths("/opt/tools/RETOC.EXE"))
	assert.False(t, linux.ToolRequiresWindowsPaths("/usr/local/bin/retoc"))

	windows := &Translator{goos: "windows"}
	assert.False(t, windows.ToolRequiresWindowsPaths(`C:\tools\retoc.exe`),
		"a Windows host never needs translation")
}

func TestCanProduceWindowsPaths(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Translator{goos: "windows"}).CanProduceWindowsPaths())
	assert.True(t, (&Translator{goos: "linux", distro: "Ubuntu"}).CanProduceWindowsPaths())
	assert.True(t, (&Translator{goos: "linux", wslpath: "/usr/bin/wslpath"}).CanProduceWindowsPaths())
	assert.False(t, (&Translator{goos: "linux"}).CanProduceWindowsPaths())
}

func TestIsDrivePath(t *testing.T) {
	t.Parallel()

	assert.True(t, isDrivePath(`C:\`))
	assert.True(t, isDrivePath(`z:/`))
	assert.False(t, isDrivePath("C:"))
	assert.False(t, isDrivePath("/mnt/c"))
	assert.False(t, isDrivePath("1:\\"))
}
