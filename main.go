package main

import (
	"context"
	"log"

	"github.com/voltedge/workshop-api/api"
)

func main() {
	if err := api.RunServer(context.Background()); err != nil {
		log.Fatal(err)
	}
}
