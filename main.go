package main

import (
	"log"

	"github.com/traPtitech/oidp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}
