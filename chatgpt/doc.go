// Package chatgpt is a client for chat-completion endpoints.
//
// A call builds a JSON request body, posts it once to the configured
// endpoint and returns either the generated text or an *Error describing
// what went wrong. There is no streaming, no retrying and no session state.
//
//	client, err := chatgpt.New(chatgpt.Config{APIKey: os.Getenv("OPENAI_API_KEY")})
//	if err != nil {
//	    return err
//	}
//	answer, err := client.Ask(ctx, "Hello")
//
// Conversations are passed as a message list:
//
//	answer, err := client.AskMessagesWith(ctx, chatgpt.GPT4, "alice", []chatgpt.Message{
//	    chatgpt.SystemMessage("You are terse."),
//	    chatgpt.UserMessage("Name a prime."),
//	}, 16)
//
// # Errors
//
// Failures are *Error values classified by Kind: KindTransport when no
// response arrived, KindService for non-2xx statuses (Code is the status and
// Message the raw body) and KindServerError for undecodable success bodies.
// IsAuth, IsRateLimit and friends look through to the HTTP classification.
package chatgpt
