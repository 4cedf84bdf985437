//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package rubypir

import (
	"bytes"
	"runtime"

	"golang.org/x/sys/unix"
)

// platform describes the host for the generated-file header. It is declared
// in each platform-specific file.
func platform() string {
	var uname unix.Utsname
	if unix.Uname(&uname) != nil {
		// Nothing else to try.
		return runtime.GOOS + "/" + runtime.GOARCH
	}
	sys := bytes.TrimRight(uname.Sysname[:], "\x00")
	rel := bytes.TrimRight(uname.Release[:], "\x00")
	mach := bytes.TrimRight(uname.Machine[:], "\x00")
	return string(sys) + " " + string(rel) + " " + string(mach)
}
