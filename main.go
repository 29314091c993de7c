package main

import "github.com/Negosyo-Digital/platform-backend/cmd"

func main() {
	cmd.Init()
}
