// Package main provides the entry point for the installcheck CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Aman-CERP/installcheck/cmd/installcheck/cmd"
	ierrors "github.com/Aman-CERP/installcheck/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()

	var exitErr *ierrors.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprint(os.Stderr, ierrors.FormatForCLI(err))
	}
	os.Exit(ierrors.ExitCode(err))
}
