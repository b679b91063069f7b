package main

import (
	"os"

	"github.com/reminisce-app/journal-server/journalservice"
)

func main() {
	if err := journalservice.Run(); err != nil {
		os.Exit(1)
	}
}
