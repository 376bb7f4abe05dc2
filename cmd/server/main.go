package main

import (
	"net/http"

	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/container"
)

func main() {
	c := container.New()

	addr := c.Config.Server.Address()
	config.Logger().Infof("listening on %s", addr)

	if err := http.ListenAndServe(addr, c.Router()); err != nil {
		config.Logger().WithError(err).Fatal("server stopped")
	}
}
