package main

import "github.com/Brianali-codes/Remaya-full/cmd"

func main() {
	cmd.Execute()
}
