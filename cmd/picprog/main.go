// Command picprog programs PIC microcontrollers through a serial ICSP
// programmer adapter.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(execute())
}

func execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	err := newRootCmd(log).ExecuteContext(ctx)
	if err != nil {
		log.Error(err)
	}
	return exitCode(err)
}
