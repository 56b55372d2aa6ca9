package main

import (
	"context"
	"fmt"
	"os"

	"actionkit/internal/cli"
)

func main() {
	result, err := cli.Run(context.Background(), os.Args[1:], cli.Streams{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "actionkit:", err)
	}
	os.Exit(result.ExitCode)
}
