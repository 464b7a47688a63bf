package main

import "github.com/likhith1072/Buyer-Lead-Intake/internal/app"

// @title           Buyer Lead Intake API
// @version         1.0
// @description     REST API for capturing and managing buyer leads.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
