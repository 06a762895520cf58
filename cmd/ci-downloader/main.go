package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/altinukshini/ci-downloader/cmd/ci-downloader/commands"
	"github.com/altinukshini/ci-downloader/cmd/ci-downloader/internal/clierr"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	if err := commands.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(clierr.ExitCodeOf(err))
	}
}
