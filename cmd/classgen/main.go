// classgen generates one class source file per entity of a draw.io class
// diagram.
//
//	classgen diagram.drawio --target src-gen
//	classgen inspect diagram.drawio
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
