package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/like-mike/listener-relay/chat"
)

// ChatRequest represents the JSON body of POST /api/chat. A missing message
// is the empty string.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the success body.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the failure body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes registers the chat relay under /api. CORS for the /api
// prefix admits only allowedOrigin.
func RegisterRoutes(app *fiber.App, relay *chat.Relay, allowedOrigin string) {
	api := app.Group("/api", cors.New(cors.Config{
		AllowOrigins: allowedOrigin,
		AllowMethods: "POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	api.Options("/chat", func(c *fiber.Ctx) error {
		c.Status(fiber.StatusNoContent)
		return nil
	})
	api.Post("/chat", ChatHandler(relay))
}

// ChatHandler forwards the message to the relay. Every failure, including a
// body that is not JSON, is reported as 500 with the error text.
func ChatHandler(relay *chat.Relay) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ChatRequest
		if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
			return writeError(c, err)
		}

		resp, err := relay.Reply(c.UserContext(), req.Message)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(ChatResponse{Response: resp.Text})
	}
}

func writeError(c *fiber.Ctx, err error) error {
	log.Printf("chat relay failed request_id=%s: %v", c.GetRespHeader(fiber.HeaderXRequestID), err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
}
