package main

import "github.com/alexiusacademia/gofastener/cmd"

func main() {
	cmd.Execute()
}
