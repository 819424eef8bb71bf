package main

import (
	"log"
	"os"

	"github.com/sysregister/sysregister/apps/api/echo"
	"github.com/sysregister/sysregister/core"
	logsvc "github.com/sysregister/sysregister/services/logger"
	"github.com/sysregister/sysregister/services/spaggiari"
)

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stdout, conf.AppName+" ", log.LstdFlags|log.Lshortfile)

	var logger core.Logger
	if conf.Debug || conf.Rollbar.Token == "" {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	client := spaggiari.NewClient(conf.Upstream, logger)

	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:   conf.Server.Addr,
			Conf:   conf,
			Client: client,
			Logger: logger,
		},
	)
	app.Start()
}
