package main

import "github.com/pfrederiksen/xoso-stats/internal/cli"

func main() {
	cli.Execute()
}
