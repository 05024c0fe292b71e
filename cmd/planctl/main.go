package main

import (
	"os"

	"github.com/WUZhiyun112/travelplanner/internal/planctl"
)

func main() {
	if err := planctl.Execute(); err != nil {
		os.Exit(1)
	}
}
