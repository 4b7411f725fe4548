// Package api exposes the reading library over HTTP: chat endpoints backed
// by the word indices and an Ollama model, plus static serving of the
// exported book files.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lectorlabs/lector/internal/chat"
	"github.com/lectorlabs/lector/internal/words"
)

// maxExamplesPerWord bounds how many example paragraphs feed the tutoring
// prompt for one word.
const maxExamplesPerWord = 10

// API holds dependencies for API handlers.
type API struct {
	words  *words.Service
	ollama *chat.Client
	log    *slog.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(wordService *words.Service, ollama *chat.Client) *API {
	return &API{
		words:  wordService,
		ollama: ollama,
		log:    slog.Default().With("component", "api"),
	}
}

// SetupRoutes defines all the API routes. Unmatched paths fall through to
// the static file handler serving the exported library from staticDir.
func SetupRoutes(router *gin.Engine, wordService *words.Service, ollama *chat.Client, staticDir string) {
	apiHandler := NewAPI(wordService, ollama)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Word lookup route
	router.GET("/words/:word", apiHandler.GetWordContextHandler)

	// Chat routes
	chatRoutes := router.Group("/chat")
	{
		chatRoutes.POST("/word/:word", apiHandler.WordChatHandler) // Tutoring chat about one word
		chatRoutes.POST("/stream", apiHandler.ChatStreamHandler)   // Free-form chat
	}

	// Everything else is a static library asset
	router.NoRoute(StaticHandler(staticDir))
}

// ChatMessage is one turn of conversation history in a chat request.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// WordChatRequest is the request body for chatting about a specific word.
type WordChatRequest struct {
	Message             string        `json:"message" binding:"required"`
	ConversationHistory []ChatMessage `json:"conversation_history" binding:"omitempty,dive"`
	Model               string        `json:"model"`
}

// ChatRequest is the request body for free-form chat.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Model   string `json:"model"`
}

// GetWordContextHandler returns the learning context of a word.
func (api *API) GetWordContextHandler(c *gin.Context) {
	word := c.Param("word")

	context, err := api.words.WordContext(word, maxExamplesPerWord)
	if err != nil {
		SendError(c, http.StatusNotFound, ErrorCodeWordNotFound, fmt.Sprintf("Word '%s' not found", word))
		return
	}

	c.JSON(http.StatusOK, context)
}

// WordChatHandler streams a tutoring conversation about one word. The word
// context is resolved first so an unknown word fails with 404 before any
// model traffic happens.
func (api *API) WordChatHandler(c *gin.Context) {
	word := c.Param("word")

	var req WordChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	context, err := api.words.WordContext(word, maxExamplesPerWord)
	if err != nil {
		SendError(c, http.StatusNotFound, ErrorCodeWordNotFound, fmt.Sprintf("Word '%s' not found", word))
		return
	}
	systemPrompt := words.SystemPrompt(context)

	messages := make([]chat.Message, 0, len(req.ConversationHistory)+1)
	for _, msg := range req.ConversationHistory {
		messages = append(messages, chat.Message{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, chat.Message{Role: "user", Content: req.Message})

	api.streamChat(c, req.Model, messages, systemPrompt)
}

// ChatStreamHandler streams a free-form conversation with the model.
func (api *API) ChatStreamHandler(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	messages := []chat.Message{{Role: "user", Content: req.Message}}
	api.streamChat(c, req.Model, messages, "")
}

// streamChat forwards model chunks to the client as server-sent data frames.
// Once the first chunk is written the response is committed, so later
// failures can only end the stream, not change the status code.
func (api *API) streamChat(c *gin.Context, model string, messages []chat.Message, systemPrompt string) {
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")

	wrote := false
	err := api.ollama.Stream(c.Request.Context(), model, messages, systemPrompt, func(chunk json.RawMessage) error {
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", chunk); err != nil {
			return err
		}
		c.Writer.Flush()
		wrote = true
		return nil
	})
	if err != nil {
		api.log.Error("chat stream failed", "error", err)
		if !wrote {
			SendError(c, http.StatusBadGateway, ErrorCodeChatFailed, "Chat backend unavailable: "+err.Error())
		}
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lector",
	})
}
