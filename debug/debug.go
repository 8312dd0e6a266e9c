// Package debug provides env-var gated trace logging for the loader
// pipeline. Gates are read once at startup:
//
//	YAMLPP_DEBUG_LOAD    file loads
//	YAMLPP_DEBUG_SCAN    directory scans
//	YAMLPP_DEBUG_RESOLVE directive resolution
//	YAMLPP_DEBUG_SECRET  secret lookups
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Load    bool
	Scan    bool
	Resolve bool
	Secret  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Load = boolEnv("YAMLPP_DEBUG_LOAD")
	d.Scan = boolEnv("YAMLPP_DEBUG_SCAN")
	d.Resolve = boolEnv("YAMLPP_DEBUG_RESOLVE")
	d.Secret = boolEnv("YAMLPP_DEBUG_SECRET")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Load() bool {
	return d.Load
}
func Scan() bool {
	return d.Scan
}
func Resolve() bool {
	return d.Resolve
}
func Secret() bool {
	return d.Secret
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
