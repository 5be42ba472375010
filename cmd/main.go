package main

import "aquascape/internal/cli"

// @title                      aquascape API
// @version                    1.0
// @description                Aquarium telemetry, feeding schedules and device commands.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cli.Execute()
}
