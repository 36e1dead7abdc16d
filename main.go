package main

import (
	"log"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/cmd"
)

func main() {
	cmd.Execute()
	log.Println("songs-server finished.")
}
