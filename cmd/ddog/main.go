package main

import (
	"os"

	"github.com/schmitthub/ddog/internal/ddog"
)

func main() {
	os.Exit(ddog.Main())
}
