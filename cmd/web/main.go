package main

import (
	"log"

	"github.com/imrishuroy/go-restaurant-orders/internal/client"
	"github.com/imrishuroy/go-restaurant-orders/internal/config"
	"github.com/imrishuroy/go-restaurant-orders/internal/web"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	api := client.New(conf.Web.APIURL, nil)
	r, err := web.NewRouter(api)
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	addr := ":" + conf.Web.Port
	log.Printf("web front end on %s, api at %s", addr, conf.Web.APIURL)
	if err := r.Run(addr); err != nil {
		log.Fatalf("failed to run web server: %v", err)
	}
}
