package main

import "bimber/cli"

// @title       Bimber Hotel Booking API
// @version     1.0
// @description Hotel discovery and room booking with wallet payments.
// @BasePath    /api/v1
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cli.Execute()
}
