// Command ticksched runs a rate-monotonic, tick-driven real-time scheduler
// simulation and reports its trace.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("ticksched failed")
		os.Exit(1)
	}
}
