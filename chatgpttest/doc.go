// Package chatgpttest runs an in-process fake chat-completion service for
// tests and examples.
//
// The server records every request it receives and answers with a
// configurable Responder:
//
//	srv := chatgpttest.NewServer(chatgpttest.WithResponder(chatgpttest.Reply("Hi")))
//	defer srv.Close()
//
//	client, _ := chatgpt.New(chatgpt.Config{APIKey: "sk-test", APIHost: srv.URL()})
//	answer, _ := client.Ask(ctx, "Hello") // "Hi"
//
// The server also accepts absolute-form request targets, so it can stand in
// for an HTTP forward proxy; RecordedRequest.RequestURI shows what arrived.
package chatgpttest
