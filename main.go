package main

import "github.com/ZpokenWeb3/plonky2-gates/cmd"

func main() {
	cmd.Execute()
}
