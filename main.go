package main

import "gridlab/segment/cmd"

func main() {
	cmd.Execute()
}
