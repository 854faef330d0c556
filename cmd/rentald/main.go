package main

import "github.com/LeJamon/goRentald/internal/cli"

func main() {
	cli.Execute()
}
