package main

import (
	"context"
	"os"

	"github.com/baasman/cakecutter/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
