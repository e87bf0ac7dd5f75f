package main

import (
	"os"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/notevault/internal/client"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	memguard.CatchInterrupt()
	defer memguard.Purge()

	log := logger.NewClientLogger("notevault")
	cli := client.NewCLI(log, client.WithBuildInfo(models.NewBuildInfo(buildVersion, buildDate, buildCommit)))

	if err := cli.Run(); err != nil {
		memguard.Purge()
		os.Exit(1)
	}
}
