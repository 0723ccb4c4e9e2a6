// Package oaclient provides the primary entry point for constructing an
// OpenAlex API client that implements the openalex.Client interface.
//
// It layers configuration, HTTP transport with retry, and request
// authentication on top of the query builders and types defined in the
// openalex package. Most applications should import oaclient to build a
// client, then use the returned openalex.Client to access per-collection
// builders, for example Works(), Authors(), Institutions(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/goalex-io/goalex/pkg/oaclient"
//	  "github.com/goalex-io/goalex/pkg/openalex"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: anonymous access to the public API.
//	  cli, err := oaclient.NewDefault()
//	  if err != nil { log.Fatal(err) }
//
//	  // Or join the polite pool with a contact address:
//	  cli, err = oaclient.New(&openalex.Config{
//	    Email: "you@example.com",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use collection builders via the openalex.Client interface
//	  work, err := cli.Works().GetByID(ctx, "W2741809807")
//	  if err != nil { log.Fatal(err) }
//	  _ = work
//	}
//
// # Helpers
//
// The package also provides convenience constructors NewDefault,
// NewWithEmail, and NewWithAPIKey that wrap New with the appropriate
// configuration.
package oaclient
