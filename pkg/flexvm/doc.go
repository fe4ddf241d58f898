// Package flexvm provides types, interfaces, and errors for working with the
// FortiFlex (formerly FlexVM) licensing API.
//
// # Overview
//
// The flexvm package defines the public surface of the client: the Config
// used to build a client, the Logger interface, request types for the
// configuration and entitlement endpoints, and the error taxonomy returned by
// the parameter translator and the request layer. A concrete implementation
// is provided by the flexclient package.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/flexvm/pkg/flexclient"
//	  "github.com/fivetwenty-io/flexvm/pkg/flexvm"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := flexclient.New(ctx, &flexvm.Config{Username: "api-user", Password: "secret"})
//	  if err != nil { log.Fatal(err) }
//
//	  configs, err := cli.Configs().List(ctx, &flexvm.ConfigListRequest{ProgramSerialNumber: "ELAVMS0000003536"})
//	  if err != nil { log.Fatal(err) }
//	  _ = configs
//	}
//
// # Products and parameters
//
// Configurations are described with a product selection: a map from product
// name (for example "fortiGateBundle") to a map of named parameters. The
// client converts the selection into the numeric product type id and the
// flattened {id, value} parameter list expected by the API, and converts the
// parameters of returned configurations back into names. Parameter keys that
// are numeric strings are forwarded verbatim, which allows using parameters
// newer than the built-in catalog.
//
// # Errors
//
// Validation failures are returned as typed errors (UnknownProductError,
// InvalidRangeError, InvalidChoiceError, ...) and can be inspected with
// errors.As. Remote failures are returned as RequestError (HTTP status >= 400),
// APIError (non-zero application status) or TransportError.
package flexvm
