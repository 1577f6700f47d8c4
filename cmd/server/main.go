// Package main - Minimal entry point for the ordering portal server.
// Prefer the cloud-portal CLI; this binary exists for deployments that
// want a single flag-driven process.
package main

import (
	"flag"
	"fmt"
	"log"

	"cloud-portal/api"
	"cloud-portal/core/admission"
	"cloud-portal/db"
	"cloud-portal/internal/config"
)

const version = "1.0.0"

func main() {
	addr := flag.String("addr", ":3001", "server address")
	dbPath := flag.String("db", "portal.db", "SQLite database path")
	flag.Parse()

	cfg := config.Get()

	store, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal(err)
	}

	controller := admission.NewController(store, store, admission.Policy{
		LockoutFinalMonth: cfg.Cancellation.LockoutFinalMonth,
	})
	server := api.NewServer(controller, api.AuthenticatorFunc(store.UserByToken), version)

	fmt.Printf("cloud-portal server v%s listening on %s\n", version, *addr)

	if err := server.ListenAndServe(*addr); err != nil {
		log.Fatal(err)
	}
}
