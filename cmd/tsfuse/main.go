// Command tsfuse merges and transforms delimited sensor logs.
//
//	tsfuse sensors --dir /data/run1
//	tsfuse merge -o combined.csv m.csv g.csv a.csv
//	tsfuse column --column A --rewrite seconds -o a.csv acc.csv
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
