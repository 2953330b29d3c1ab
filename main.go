package main

import "github.com/theirongolddev/ccmonitor/cmd"

func main() {
	cmd.Execute()
}
