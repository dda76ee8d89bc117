// Package harvest provides types, interfaces, and helpers for working with the
// Harvest time-tracking and invoicing API, a hierarchical REST+XML service.
//
// # Overview
//
// The package defines a generic resource-mapping framework rather than one
// hand-written client per resource. Each resource kind (users, clients,
// projects, invoices, ...) is declared once as a KindSpec in a Registry. The
// registry derives the kind's XML element name, plural name and base path, and
// records which parent kinds it can be nested under. A concrete client
// implementation is provided by the harvestclient package, which wires
// configuration, transport and caching together.
//
// Getting a client
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
//	  cli, err := harvestclient.New(ctx, &harvest.Config{
//	    BaseURL:  "https://acme.harvestapp.com",
//	    Email:    "me@example.com",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  project, err := cli.Project(ctx, 42)
//	  if err != nil { log.Fatal(err) }
//
//	  for assignment, err := range cli.ProjectUserAssignments(ctx, project, nil) {
//	    if err != nil { log.Fatal(err) }
//	    _ = assignment
//	  }
//	}
//
// # Entities
//
// Every fetched resource is an *Entity: an ordered attribute bag whose values
// were coerced from the XML "type" annotation (integer, float, decimal,
// datetime, date, boolean, string). Unknown tags are kept as extra attributes.
// Coercion is lenient by default: a malformed value degrades to the zero value
// of its declared type. Set Config.StrictCoercion to surface a CoercionError.
//
// # Collections
//
// Collections are returned as iter.Seq2[*Entity, error]. The response document
// is fetched once when ranging starts and elements are converted one at a time
// as the loop advances. Breaking out early is allowed.
//
// # Caching
//
// Items are cached by (kind, id). Unfiltered collections are cached by
// (kind, "all") or (kind, parent scope) and only once fully drained. Filtered
// collections are never cached. Pass Bypass() to force a refetch, which then
// overwrites the cached entry. Stores are pluggable: MemoryStore, NoOpStore,
// NATSKVStore and CacheChain.
//
// # Errors
//
// Transport failures are reported as *ConnectionError and unparsable bodies as
// *MalformedDocumentError. Helpers such as IsConnectionFailure,
// IsMalformedDocument and IsNotFound make it easy to branch on them.
package harvest
