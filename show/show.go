// Package show renders values for trial and report output. Rendering is for
// humans only; the engine never compares rendered strings.
package show

import "github.com/davecgh/go-spew/spew"

// Map keys are sorted so map-shaped values render identically from run to
// run; pointer addresses are suppressed for the same reason.
var config = &spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	SpewKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

// Show renders v as a Go-syntax-flavored one-liner.
func Show(v any) string {
	return config.Sprintf("%#v", v)
}
