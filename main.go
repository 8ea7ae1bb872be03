package main

import (
	"os"

	"github.com/Aditya-Mahlawat/resume-screener/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
