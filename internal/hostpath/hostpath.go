// Package hostpath translates file paths between the Windows drive-letter
// convention and the native convention of the current host.
//
// The converter typically runs under WSL while retoc is a Windows binary, so
// two conventions coexist within a single run: every path the tool itself
// touches is native, and only the arguments handed to retoc are translated
// back to the Windows side. Translation prefers the wslpath utility when it
// is on the search path and falls back to pure string mapping otherwise.
package hostpath

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// mountRoot is where WSL exposes Windows drives.
const mountRoot = "/mnt"

// Translator converts paths between host conventions. Construct it once with
// New and pass it to the stages that need it.
type Translator struct {
	goos    string // host OS, runtime.GOOS outside of tests
	wslpath string // absolute path of the wslpath utility, "" when absent
	distro  string // WSL_DISTRO_NAME, "" outside of WSL
}

// New builds a Translator for the current host, probing the search path for
// wslpath once.
func New() *Translator {
	wslpath, _ := exec.LookPath("wslpath")
	return &Translator{
		goos:    runtime.GOOS,
		wslpath: wslpath,
		distro:  os.Getenv("WSL_DISTRO_NAME"),
	}
}

// IsForeign reports whether p is expressed in the Windows convention on a
// non-Windows host: a drive-letter prefix like C:\ or C:/, or a UNC prefix.
func (t *Translator) IsForeign(p string) bool {
	if t.goos == "windows" {
		return false
	}
	return isDrivePath(p) || strings.HasPrefix(p, `\\`)
}

// ToNative translates p into the host's native convention. Native paths pass
// through unchanged. Drive-letter paths become /mnt/<drive>/... on non-Windows
// hosts, via wslpath -u when available. UNC paths require wslpath.
func (t *Translator) ToNative(p string) (string, error) {
	if !t.IsForeign(p) {
		return p, nil
	}
	if t.wslpath != "" {
		if native, err := t.runWSLPath("-u", p); err == nil {
			return native, nil
		}
	}
	if isDrivePath(p) {
		drive := strings.ToLower(p[:1])
		rest := strings.ReplaceAll(p[2:], `\`, "/")
		return filepath.Join(mountRoot, drive, rest), nil
	}
	return "", fmt.Errorf("cannot translate %s to a native path: wslpath is not available", p)
}

// ToolRequiresWindowsPaths reports whether the given converter binary runs on
// the Windows side and therefore needs its path arguments translated. A .exe
// on a non-Windows host is assumed to be launched through the WSL interop
// layer.
func (t *Translator) ToolRequiresWindowsPaths(toolPath string) bool {
	return t.goos != "windows" && strings.EqualFold(filepath.Ext(toolPath), ".exe")
}

// CanProduceWindowsPaths reports whether ToWindows has any chance of
// succeeding on this host. It is checked as a precondition before a run that
// will need translation, so the failure surfaces before any staging work.
func (t *Translator) CanProduceWindowsPaths() bool {
	if t.goos == "windows" {
		return true
	}
	return t.wslpath != "" || t.distro != ""
}

// ToWindows translates a native path into the Windows convention for the
// external tool. Preference order: wslpath -w, the /mnt/<drive> reverse
// mapping, then a \\wsl.localhost UNC path built from WSL_DISTRO_NAME.
func (t *Translator) ToWindows(p string) (string, error) {
	if t.goos == "windows" || isDrivePath(p) {
		return p, nil
	}
	if t.wslpath != "" {
		if win, err := t.runWSLPath("-w", p); err == nil {
			return win, nil
		}
	}
	if rest, ok := strings.CutPrefix(p, mountRoot+"/"); ok && len(rest) > 0 {
		drive := strings.ToUpper(rest[:1])
		if len(rest) == 1 {
			return drive + `:\`, nil
		}
		if rest[1] == '/' {
			return drive + `:\` + strings.ReplaceAll(rest[2:], "/", `\`), nil
		}
	}
	if t.distro != "" {
		return `\\wsl.localhost\` + t.distro + strings.ReplaceAll(p, "/", `\`), nil
	}
	return "", fmt.Errorf("cannot translate %s to a Windows path: install wslpath or set WSL_DISTRO_NAME", p)
}

// runWSLPath invokes the wslpath utility with a single conversion flag.
func (t *Translator) runWSLPath(flag, p string) (string, error) {
	out, err := exec.Command(t.wslpath, flag, p).Output()
	if err != nil {
		return "", fmt.Errorf("wslpath %s %s: %w", flag, p, err)
	}
	result := strings.TrimSpace(string(out))
	if result == "" {
		return "", fmt.Errorf("wslpath %s %s: empty result", flag, p)
	}
	return result, nil
}

// isDrivePath reports whether p starts with a drive-letter prefix like C:\.
func isDrivePath(p string) bool {
	return len(p) >= 3 &&
		(p[0] >= 'A' && p[0] <= 'Z' || p[0] >= 'a' && p[0] <= 'z') &&
		p[1] == ':' &&
		(p[2] == '\\' || p[2] == '/')
}
