package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/code-payments/instruction-gateway/pkg/server"
)

func main() {
	if err := server.Run(); err != nil {
		logrus.StandardLogger().WithError(err).Error("server terminated")
		os.Exit(1)
	}
}
