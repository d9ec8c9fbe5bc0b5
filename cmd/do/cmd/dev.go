package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/spf13/cobra"
)

// airSettings configure air without an .air.toml. The server binary is
// rebuilt when Go code, migrations, guides or assets change.
var airSettings = [][2]string{
	{"-root", "."},
	{"-build.cmd", "go build -o ./tmp/main ./cmd/server"},
	{"-build.bin", "./tmp/main"},
	{"-build.delay", "100"},
	{"-build.exclude_dir", "bin,tmp,data,_examples"},
	{"-build.exclude_regex", "_test.go$"},
	{"-build.include_ext", "go,sql,md,svg,txt"},
	{"-build.kill_delay", "500ms"},
	{"-build.send_interrupt", "true"},
}

func DevCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Run the API server with hot reload (air)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			air, err := exec.LookPath("air")
			if err != nil {
				return errors.New("air not found, install it with: go install github.com/air-verse/air@latest")
			}

			argv := []string{"air", "-c", os.DevNull}
			for _, kv := range airSettings {
				argv = append(argv, kv[0], kv[1])
			}

			if err := os.Setenv("PORT", port); err != nil {
				return err
			}
			if os.Getenv("APP_ENV") == "" {
				_ = os.Setenv("APP_ENV", "development")
			}

			fmt.Printf("Watching for changes, API on http://localhost:%s\n", port)
			return syscall.Exec(air, argv, os.Environ())
		},
	}
	cmd.Flags().StringVar(&port, "port", envOr("PORT", "8090"), "port the API server listens on")
	return cmd
}
