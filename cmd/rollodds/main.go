package main

import (
	"github.com/xtding233/roll-odds/cmd/app"
)

func main() {
	app.Run()
}
