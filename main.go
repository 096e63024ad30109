package main

import "github.com/frahmantamala/earned-wage-access/cmd"

func main() {
	cmd.Execute()
}
