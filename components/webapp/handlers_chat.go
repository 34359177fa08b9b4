package webapp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/analytica/webapp/pkg/backend"
)

// chatFallbackMessage is shown as the assistant's reply when the query
// could not be processed, keeping the transcript intact.
const chatFallbackMessage = "Sorry, I encountered an error processing your query."

var chatSuggestions = []string{
	"What are the main trends in this data?",
	"Which column has the most missing values?",
	"Show me a summary of the numeric columns",
	"Are there any outliers I should know about?",
}

type chatView struct {
	BaseView
	DatasetID   string
	DatasetName string
	Messages    []ChatMessageView
	Suggestions []string
	Error       string
}

func (a *App) handleChatPage(c *fiber.Ctx) error {
	id := c.Params("id")
	api := a.client(c)
	ctx := c.UserContext()

	dataset, err := api.GetDataset(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return a.expireSession(c)
		}
		return c.Redirect("/upload", fiber.StatusFound)
	}

	view := chatView{
		BaseView:    a.base(c, "Chat with Data"),
		DatasetID:   id,
		DatasetName: dataset.Filename,
		Suggestions: chatSuggestions,
	}

	history, err := api.GetChatHistory(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return a.expireSession(c)
		}
		view.Error = backend.ErrorMessage(err, "Could not load the conversation")
	}
	view.Messages = a.chatMessageViews(history, ThemeFromRequest(c))
	return a.renderer.Render(c, "chat", view)
}

func (a *App) handleChatSend(c *fiber.Ctx) error {
	id := c.Params("id")
	api := a.client(c)
	ctx := c.UserContext()
	theme := ThemeFromRequest(c)

	message := c.FormValue("message")
	if message == "" {
		return c.Redirect("/chat/"+id, fiber.StatusFound)
	}

	dataset, err := api.GetDataset(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return a.expireSession(c)
		}
		return c.Redirect("/upload", fiber.StatusFound)
	}

	// The transcript is rebuilt from history plus the just-sent exchange,
	// so a reply failure still shows the visitor's own message.
	history, _ := api.GetChatHistory(ctx, id)
	views := a.chatMessageViews(history, theme)
	views = append(views, ChatMessageView{
		ID:        uuid.NewString(),
		Role:      "user",
		Content:   message,
		Timestamp: time.Now().UTC(),
	})

	reply, err := api.SendChatMessage(ctx, id, message)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return a.expireSession(c)
		}
		views = append(views, ChatMessageView{
			ID:        uuid.NewString(),
			Role:      "assistant",
			Content:   chatFallbackMessage,
			Timestamp: time.Now().UTC(),
		})
	} else {
		views = append(views, ChatMessageView{
			ID:        uuid.NewString(),
			Role:      "assistant",
			Content:   reply.Message,
			Timestamp: time.Now().UTC(),
			Data:      formatQueryResult(reply.Data),
			Chart:     a.renderChatChart(reply.ChartConfig, theme),
		})
	}

	return a.renderer.Render(c, "chat", chatView{
		BaseView:    a.base(c, "Chat with Data"),
		DatasetID:   id,
		DatasetName: dataset.Filename,
		Messages:    views,
		Suggestions: chatSuggestions,
	})
}

func (a *App) handleChatClear(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := a.client(c).ClearChatHistory(c.UserContext(), id); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return a.expireSession(c)
		}
	}
	return c.Redirect("/chat/"+id, fiber.StatusFound)
}

func (a *App) chatMessageViews(messages []backend.ChatMessage, theme Theme) []ChatMessageView {
	views := make([]ChatMessageView, 0, len(messages))
	for _, msg := range messages {
		views = append(views, ChatMessageView{
			ID:        uuid.NewString(),
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
			Data:      formatQueryResult(msg.QueryResult),
			Chart:     a.renderChatChart(msg.ChartConfig, theme),
		})
	}
	return views
}

// renderChatChart turns an inline chart descriptor into rendered markup.
// Messages without a descriptor, or with one that cannot be decoded,
// simply carry no chart.
func (a *App) renderChatChart(config map[string]any, theme Theme) *ChartView {
	if len(config) == 0 {
		return nil
	}
	raw, err := json.Marshal(config)
	if err != nil {
		return nil
	}
	var chart backend.ChartConfig
	if err := json.Unmarshal(raw, &chart); err != nil {
		return nil
	}
	view := a.charts.Render(chart, theme)
	return &view
}

func formatQueryResult(data any) string {
	if data == nil {
		return ""
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return ""
	}
	return string(raw)
}
