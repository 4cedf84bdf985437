package rubypir

import (
	"gitlab.com/variadico/lctime"
)

// Header returns the comment lines that begin generated output, or the empty
// string if cfg.Stamp is empty.
func Header(label string, cfg *Config) string {
	if cfg.Stamp == "" {
		return ""
	}
	s := "# generated by rubypir from " + label + " on " + lctime.Strftime(cfg.Stamp, cfg.now()) + "\n"
	if cfg.Host {
		s += "# host: " + platform() + "\n"
	}
	return s
}
