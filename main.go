package main

import (
	"os"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
