package chatgpttest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Responder writes the reply for one recorded request.
type Responder func(c *gin.Context, req RecordedRequest)

// Reply answers 200 with one choice per content string. Usage counts words.
func Reply(contents ...string) Responder {
	return func(c *gin.Context, req RecordedRequest) {
		decoded, _ := req.Decode()
		c.JSON(http.StatusOK, completion(decoded, contents))
	}
}

// Echo answers with the content of the last message received.
func Echo() Responder {
	return func(c *gin.Context, req RecordedRequest) {
		decoded, err := req.Decode()
		if err != nil || len(decoded.Messages) == 0 {
			c.String(http.StatusBadRequest, `{"error":"no messages"}`)
			return
		}
		last := decoded.Messages[len(decoded.Messages)-1].Content
		c.JSON(http.StatusOK, completion(decoded, []string{last}))
	}
}

// Status answers with the given status and raw body.
func Status(code int, body string) Responder {
	return func(c *gin.Context, _ RecordedRequest) {
		c.Data(code, "application/json", []byte(body))
	}
}

// Raw answers 200 with body verbatim.
func Raw(body string) Responder {
	return Status(http.StatusOK, body)
}

// Delay waits d, or until the client goes away, before delegating to next.
func Delay(d time.Duration, next Responder) Responder {
	return func(c *gin.Context, req RecordedRequest) {
		select {
		case <-time.After(d):
		case <-c.Request.Context().Done():
			return
		}
		next(c, req)
	}
}

func completion(req CompletionRequest, contents []string) Completion {
	prompt := 0
	for _, m := range req.Messages {
		prompt += len(strings.Fields(m.Content))
	}

	resp := Completion{
		ID:      "chatcmpl-" + uuid.NewString(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: make([]Choice, 0, len(contents)),
	}
	completionTokens := 0
	for i, content := range contents {
		completionTokens += len(strings.Fields(content))
		resp.Choices = append(resp.Choices, Choice{
			Index:        i,
			Message:      Message{Role: "assistant", Content: content},
			FinishReason: "stop",
		})
	}
	resp.Usage = Usage{
		PromptTokens:     prompt,
		CompletionTokens: completionTokens,
		TotalTokens:      prompt + completionTokens,
	}
	return resp
}
