package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"switcheroo/internal/switcheroo"
)

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	code := switcheroo.ExitCode(err)
	if err != nil && code != switcheroo.ExitOK && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}
