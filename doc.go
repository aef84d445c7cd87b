// Package rmg is the Go client SDK for the ReportMyGrievance
// incident-management backend.
//
// The SDK has four cooperating pieces: a configured request client
// (pkg/api.Client) that owns base URL, timeout, token injection, and
// global 401 handling; typed endpoint facades that normalize every call
// into a Result; a persistent session store (pkg/sessionstore) holding
// the auth token and cached user profile; and a session manager
// (pkg/session.Manager) that keeps all three in sync.
//
// # Quick Start
//
// Load configuration, build a client, and resolve the persisted session:
//
//	cfg, err := rmg.LoadConfig(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := rmg.New(cfg, rmg.WithLogger(logger.New()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	state := client.Session.Init(ctx)
//	if !state.Authenticated {
//	    res := client.Session.Login(ctx, rmg.Credentials{Email: email, Password: pass})
//	    if !res.OK() {
//	        log.Fatal(res.Err.Summary())
//	    }
//	}
//
//	incidents := client.Incidents.List(ctx)
//
// Every operation returns a Result rather than a transport error; a
// failed call carries the backend's error body (or a synthesized message
// when no response arrived) and never a raw exception.
package rmg
