// Command enclose solves tile-map enclosure instances and classifies
// map screenshots.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if err := newRootCmd(log).Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
