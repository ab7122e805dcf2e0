package main

import "github.com/user/tarih/cmd"

func main() {
	cmd.Execute()
}
