// @title EventHub API
// @version 1.0
// @description Backend for the EventHub events and social platform.

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "eventhub_backend/cmd"

func main() {
	cmd.Execute()
}
