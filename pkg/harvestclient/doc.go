// Package harvestclient provides the primary entry point for constructing a
// harvest API client that implements the harvest.Client interface.
//
// It normalizes the configuration and wires the HTTP transport, the kind
// registry and the cache store defined in the harvest package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/harvest/pkg/harvest"
//	  "github.com/fivetwenty-io/harvest/pkg/harvestclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := harvestclient.New(ctx, &harvest.Config{
//	    BaseURL:  "acme.harvestapp.com",
//	    Email:    "me@example.com",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  for project, err := range cli.Projects(ctx, nil) {
//	    if err != nil { log.Fatal(err) }
//	    log.Println(project)
//	  }
//	}
//
// # Cache backends
//
// Config.Cache selects the store: in-memory (default), none, or NATS
// JetStream KV behind an in-memory first level. Config.Store injects any
// other harvest.Store.
package harvestclient
