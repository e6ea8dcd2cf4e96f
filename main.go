package main

import "nathanbeddoewebdev/sigdata/cmd"

func main() {
	cmd.Execute()
}
