//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)
// +build !aix,!darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd,!solaris

package rubypir

import "runtime"

func platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}
