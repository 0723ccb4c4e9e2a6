// Package openalex provides types, query builders, and pagination helpers
// for working with the OpenAlex scholarly-metadata API.
//
// # Overview
//
// The openalex package defines the entity documents (Work, Author, Source,
// and the other collections), the fluent Query builder that accumulates
// filter, sort, search, group-by, select and sample directives, the
// serializer that renders them into the API's flattened query grammar, and a
// Paginator covering both of the API's pagination protocols. A concrete
// client wiring configuration, transport, and authentication is provided by
// the oaclient package; most consumers should import oaclient to construct a
// client and then build queries through the Client interface exposed here.
//
// Getting a client
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
//	  cli, err := oaclient.New(&openalex.Config{Email: "you@example.com"})
//	  if err != nil { log.Fatal(err) }
//
//	  works, err := cli.Works().
//	    Filter("publication_year", 2020).
//	    Filter("is_oa", true).
//	    Get(ctx, &openalex.GetOptions{PerPage: 50})
//	  if err != nil { log.Fatal(err) }
//	  _ = works
//	}
//
// # Filters
//
// Filter values may be scalars, slices, nested F maps (rendered as dotted
// paths), or values wrapped with Not, Gt and Lt. FilterOr joins list values
// disjunctively:
//
//	cli.Works().
//	  FilterOr("institutions", openalex.F{"country_code": []string{"tw", "hk", "us"}}).
//	  FilterOr("publication_year", 2022).
//	  URL()
//	// .../works?filter=institutions.country_code:tw|hk|us,publication_year:2022
//
// # Pagination
//
// Paginate returns a pull-based iterator yielding one page per step, using
// either cursor or page pagination:
//
//	p, err := cli.Authors().SearchFilter("display_name", "einstein").
//	  Paginate(&openalex.PaginateOptions{PerPage: 200})
//	if err != nil { log.Fatal(err) }
//
//	for p.HasNext() {
//	  page, err := p.Next(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = page.Results
//	}
package openalex
