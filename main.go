package main

import "github.com/StinkyLord/rust-use-normalizer/cmd"

func main() {
	cmd.Execute()
}
