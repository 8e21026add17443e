package main

import (
	"log"
	"net/http"

	"chainshot/config"
	"chainshot/game"
	"chainshot/network"
	"chainshot/room"
)

func main() {
	config.InitConfig()

	opts := room.DefaultOptions()
	if config.GetBool("CHAIN_REPLACE_MODE", false) {
		opts.Policy = game.SpawnReplace
	}
	opts.ChainLifetime = config.GetFloat("CHAIN_LIFETIME_SECONDS", 0)

	rooms := room.NewManager(opts)
	server := network.NewServer(rooms)

	addr := config.GetString("LISTEN_ADDR", ":8080")
	log.Printf("listening on %s (ws endpoint: /ws)", addr)
	log.Fatal(http.ListenAndServe(addr, server.Handler()))
}
