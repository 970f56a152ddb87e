package main

import (
	"log"

	"github.com/jalexanderII/session-todos/app"
	"github.com/jalexanderII/session-todos/config"
)

// @title Session Todos API
// @version 0.1
// @description Read-only JSON view of the todo lists held in the caller's session.
// @contact.name Joel Alexander
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	if err := config.LoadENV(); err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	l := app.NewLogger(cfg)
	if err = app.SetupAndRunApp(cfg, l); err != nil {
		l.Fatal(err)
	}
}
