package main

import (
	"os"

	"inkwell/service"
)

func main() {
	os.Exit(service.Execute())
}
