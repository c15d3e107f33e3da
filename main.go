package main

import "github.com/dzjyyds666/pdx/cmd"

func main() {
	cmd.Execute()
}
