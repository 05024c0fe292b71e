package main

import (
	"log"

	"github.com/WUZhiyun112/travelplanner/internal/server"
)

func main() {
	if err := server.Run(); err != nil {
		log.Fatal(err)
	}
}
