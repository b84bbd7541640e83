package main

import (
	"github.com/icnaming/icnaming/internal/cli"
)

func main() {
	cli.Execute()
}
