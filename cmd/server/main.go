package main

import (
	"flag"

	"tender-drafting-api/app"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	app.Run(*configPath)
}
