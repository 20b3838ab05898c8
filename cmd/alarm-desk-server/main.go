package main

import "github.com/oshokin/alarm-desk/cmd/alarm-desk-server/cmd"

func main() {
	cmd.Execute()
}
