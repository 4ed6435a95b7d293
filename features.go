package main

import (
	"fmt"
	"io"
	"runtime"
	"sort"
)

// Version is overridden at link time with -ldflags "-X main.Version=...".
var Version = "dev"

// compiledFeatures tracks build-time feature flags via init() registration.
var compiledFeatures []string

func init() {
	compiledFeatures = append(compiledFeatures, "script:lua")
}

func printFeatures(w io.Writer, registry *DeviceRegistry) {
	fmt.Fprintf(w, "CCM Engine %s\n", Version)
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
	fmt.Fprintf(w, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compiled features:")

	sort.Strings(compiledFeatures)
	for _, f := range compiledFeatures {
		fmt.Fprintf(w, "  %s\n", f)
	}
	if len(compiledFeatures) == 0 {
		fmt.Fprintln(w, "  (none)")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Devices:")
	for _, name := range registry.Names() {
		info, _ := registry.Lookup(name)
		dev := info.New(nil)
		fmt.Fprintf(w, "  %-12s $%08X  window 0x%03X  state v%d  %s\n",
			name, info.Base, dev.MMIOSize(), dev.StateVersion(), info.Desc)
	}
}
