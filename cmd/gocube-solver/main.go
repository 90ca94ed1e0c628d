// gocube-solver - CLI application for finding optimal Rubik's Cube solutions.
package main

import (
	"github.com/SeamusWaldron/gocube_solver/internal/cli"
)

func main() {
	cli.Execute()
}
