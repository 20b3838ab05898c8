package main

import "github.com/oshokin/alarm-desk/cmd/alarm-desk/cmd"

func main() {
	cmd.Execute()
}
