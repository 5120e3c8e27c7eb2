package main

import (
	"eventcatalog/cmd/server/cmd"

	_ "eventcatalog/docs"
)

// @title Event Catalog API
// @version 1.0
// @description Venues and the events held at them.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token returned by /auth/login.
func main() {
	cmd.Execute()
}
