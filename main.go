package main

import "github.com/ByLCY/ledgerpdf/cmd"

func main() {
	cmd.Execute()
}
