// Package flexclient provides the main entry point for creating FortiFlex
// API clients.
//
// New validates a flexvm.Config and wires the session store, token manager,
// request layer and parameter translator together:
//
//	client, err := flexclient.New(ctx, &flexvm.Config{
//		Username:       "api-user",
//		Password:       "secret",
//		PersistSession: true,
//	})
//	if err != nil {
//		return err
//	}
//
//	programs, err := client.Programs().List(ctx)
//
// Raw endpoints not covered by a resource client can be called with
// SendRequest, which still goes through login and token renewal.
package flexclient
