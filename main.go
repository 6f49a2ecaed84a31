package main

import (
	"os"

	"github.com/deltagreen-vtt/dgsettings/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
