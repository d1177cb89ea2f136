package main

import (
	"github.com/danisworo/storefront/cmd"
)

func main() {
	cmd.Start()
}
