package main

import "hunterquest/cmd/hq/root"

func main() {
	root.Execute()
}
