// Command dummy_backend answers OpenAI chat completion requests with a fixed
// reply. Run the relay with USE_DUMMY_BACKEND=1 to use it.
package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type ChatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

func chatCompletionsHandler(c *fiber.Ctx) error {
	var req ChatCompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fiber.Map{"message": err.Error(), "type": "invalid_request_error"},
		})
	}

	model := req.Model
	if model == "" {
		model = "dummy-model"
	}

	return c.JSON(ChatCompletionResponse{
		ID:      "chatcmpl-dummy",
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []Choice{{
			Message:      Message{Role: "assistant", Content: "It sounds like a lot is on your mind. [User: 'dummy']"},
			FinishReason: "stop",
		}},
		Usage: Usage{PromptTokens: 1, CompletionTokens: 1, TotalTokens: 2},
	})
}

func main() {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Post("/v1/chat/completions", chatCompletionsHandler)
	log.Fatal(app.Listen(":2000"))
}
