package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"stegochat/internal/domain"
	"stegochat/internal/presence"
	"stegochat/internal/queue"
	"stegochat/internal/relay"
	"stegochat/internal/trust"
)

func main() {
	configPath := flag.String("config", "relayd.toml", "path to the TOML config file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := relay.LoadConfig(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("cannot load config")
	}

	trustStore := trust.NewStore()
	for _, f := range cfg.Friendships {
		trustStore.Seed(domain.PrincipalID(f.A), domain.PrincipalID(f.B))
	}

	router := relay.NewRouter(presence.NewDirectory(), queue.NewStore(), trustStore)
	srv := relay.NewServer(relay.NewTokenAuthenticator(cfg.Principals), router)

	logrus.WithFields(logrus.Fields{
		"listen":      cfg.Listen,
		"principals":  len(cfg.Principals),
		"friendships": len(cfg.Friendships),
	}).Info("starting relayd")

	if err := srv.ListenAndServe(cfg.Listen); err != nil {
		logrus.WithError(err).Fatal("relayd stopped")
	}
}
