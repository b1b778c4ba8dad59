package main

import (
	"context"

	"github.com/vsvito420/on-track/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}
