package main

import "github.com/hweijian/ghostgame-go/internal/cli"

func main() {
	cli.Execute()
}
