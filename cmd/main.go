package main

import (
	"medisync/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("medisync failed to start: %v", err)
	}

	app.Run()
}
