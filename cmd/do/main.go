package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/templui/habitkit/cmd/do/cmd"
)

// sourceDirs are the trees bin/do is built from.
var sourceDirs = []string{"cmd/do", "internal"}

var errStale = errors.New("stale")

func main() {
	rebuildIfStale()

	rootCmd := &cobra.Command{
		Use:          "do",
		Short:        "Development tools for habitkit",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.DevCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.SeedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rebuildIfStale rebuilds bin/do and re-execs it when any Go or SQL source
// is newer than the binary. Binaries started via `go run` are left alone.
func rebuildIfStale() {
	exe, err := os.Executable()
	if err != nil || !strings.HasSuffix(exe, filepath.Join("bin", "do")) {
		return
	}

	info, err := os.Stat(exe)
	if err != nil || !newerSources(info.ModTime()) {
		return
	}

	fmt.Println("Rebuilding bin/do...")
	build := exec.Command("go", "build", "-o", exe, "./cmd/do")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fmt.Println("Rebuild failed:", err)
		return
	}

	if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
		fmt.Println("Re-exec failed:", err)
	}
}

func newerSources(than time.Time) bool {
	for _, dir := range sourceDirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			ext := filepath.Ext(path)
			if ext != ".go" && ext != ".sql" {
				return nil
			}
			info, err := d.Info()
			if err == nil && info.ModTime().After(than) {
				return errStale
			}
			return nil
		})
		if errors.Is(err, errStale) {
			return true
		}
	}
	return false
}
