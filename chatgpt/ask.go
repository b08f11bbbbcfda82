package chatgpt

import "context"

// Ask sends input as a single user message with the default model, user and
// token cap, and returns the answer text.
func (c *Client) Ask(ctx context.Context, input string) (string, error) {
	return c.AskWith(ctx, DefaultModel, DefaultUser, input, DefaultMaxTokens)
}

// AskAs is Ask on behalf of user.
func (c *Client) AskAs(ctx context.Context, user, input string) (string, error) {
	return c.AskWith(ctx, DefaultModel, user, input, DefaultMaxTokens)
}

// AskModel is Ask against model.
func (c *Client) AskModel(ctx context.Context, model Model, input string) (string, error) {
	return c.AskWith(ctx, model, DefaultUser, input, DefaultMaxTokens)
}

// AskMessages sends a conversation with the default model, user and token cap.
func (c *Client) AskMessages(ctx context.Context, messages []Message) (string, error) {
	return c.AskMessagesWith(ctx, DefaultModel, DefaultUser, messages, DefaultMaxTokens)
}

// AskModelMessages sends a conversation to model.
func (c *Client) AskModelMessages(ctx context.Context, model Model, messages []Message) (string, error) {
	return c.AskMessagesWith(ctx, model, DefaultUser, messages, DefaultMaxTokens)
}

// AskWith wraps input as one user message.
func (c *Client) AskWith(ctx context.Context, model Model, user, input string, maxTokens int) (string, error) {
	return c.AskMessagesWith(ctx, model, user, []Message{UserMessage(input)}, maxTokens)
}

// AskMessagesWith sends messages and returns the concatenated answer text.
func (c *Client) AskMessagesWith(ctx context.Context, model Model, user string, messages []Message, maxTokens int) (string, error) {
	resp, err := c.AskOriginal(ctx, model, user, messages, maxTokens)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
