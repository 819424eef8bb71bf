package main

import (
	"log"
	"os"

	"github.com/sysregister/sysregister/core"
	"github.com/sysregister/sysregister/core/classeviva"
	logsvc "github.com/sysregister/sysregister/services/logger"
	"github.com/sysregister/sysregister/services/mockdata"
	"github.com/sysregister/sysregister/services/webapi"
	"github.com/sysregister/sysregister/storage/session"
)

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stderr, "", 0)
	logger := logsvc.NewStdLogger(std)
	logger.Enable(conf.Debug)

	real := webapi.NewProvider(conf.Client.BaseURL)
	mock := mockdata.NewService(conf.Demo)

	cli := &commandLine{
		facade: classeviva.NewFacade(real, mock, conf.Demo.UID),
		web:    real,
		store:  session.NewFileStore(conf.Client.SessionFile),
		log:    logger,
	}

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Println(err)
		}
		os.Exit(1)
	}
}
