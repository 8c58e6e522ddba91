package main

import "github.com/nolancacheux/webscrapping-clubs/internal/cli"

func main() {
	cli.Execute()
}
