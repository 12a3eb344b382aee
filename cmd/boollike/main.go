// Command boollike generates negation and bool conversions for two-variant enums annotated with
// @boollike. It is meant to run under go generate:
//
//	//go:generate go run github.com/pablor21/boollike/cmd/boollike
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "%s%s\n", colors(noColorEnv()).Red("error: ").Bold(), err)
		}
		os.Exit(1)
	}
}
