// Package httpc provides the outbound HTTP client used for upstream
// calls, with detailed timing metrics and a fluent builder for requests.
//
// The client is configured with functional options:
//
//	client := httpc.NewClient(
//	    httpc.WithBaseURL("https://jsonplaceholder.typicode.com"),
//	    httpc.WithTimeout(30*time.Second),
//	    httpc.WithProxy("http://127.0.0.1:8888"),
//	)
//
//	req := httpc.NewRequest("GET", "/users/1")
//
//	resp, err := client.Do(ctx, req)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Status: %d, TTFB: %v\n", resp.StatusCode, resp.Timing.TimeToFirstByte)
//
// The proxy and TLS-trust overrides exist so an HTTPS-intercepting
// debugging proxy can be placed on the outbound path through explicit
// configuration instead of ambient process proxy settings.
//
// Thread Safety:
//
// Client is safe for concurrent use. Multiple goroutines may invoke
// methods on a Client simultaneously.
package httpc
