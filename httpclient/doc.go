// Package httpclient provides the HTTP transport used by the chat client:
// transport selection (default, caller-supplied, or proxied through an HTTP
// or SOCKS5 proxy), authentication policy, single-shot request execution,
// and status-code classification.
//
// Requests are never retried; a call returns exactly once.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    URL:    "https://api.example.com/v1/items",
//	    Body:   payload,
//	})
//
// # Through a Proxy
//
//	client, err := httpclient.New(httpclient.Config{
//	    Proxy: httpclient.HTTPProxy("proxy.internal", 3128),
//	})
package httpclient
