package services

import (
	"MoodDiaryGo/config"
	"MoodDiaryGo/models"
	"MoodDiaryGo/store"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

const insightPrompt = `You are a warm, supportive assistant that writes short weekly mood reflections.

Rules:
1. Write in the first person, as if the user is reflecting on their own week.
2. If there are no entries, say the week has no records yet; do not invent moods.
3. Mention the dominant mood and any notable swings, referencing notes when present.
4. Offer one gentle, practical suggestion for the coming week.
5. Keep it under 150 words, plain text, no markdown.`

// Insight produces an LLM-written weekly reflection over a user's
// recent mood entries.
type Insight struct {
	store  store.MoodStore
	client *LLMClient
}

func NewInsight(s store.MoodStore, client *LLMClient) *Insight {
	return &Insight{store: s, client: client}
}

// WeeklyReflection summarizes the last seven days of entries.
func (i *Insight) WeeklyReflection(ctx context.Context, userID string) (string, error) {
	entries, err := i.store.ListEntries(userID)
	if err != nil {
		return "", err
	}

	since := store.DayKey(time.Now().AddDate(0, 0, -6))
	var recent []models.MoodEntry
	for _, e := range entries {
		if e.Day >= since {
			recent = append(recent, e)
		}
	}

	config.Logger.Debugw("generating weekly reflection",
		"userID", userID,
		"entries", len(recent),
	)

	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(insightPrompt)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(formatEntries(recent))},
		},
	}

	response, err := i.client.Chat.GenerateContent(ctx, messages,
		llms.WithTemperature(0.7),
	)
	if err != nil {
		return "", fmt.Errorf("generate weekly reflection: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("generate weekly reflection: empty response")
	}

	return response.Choices[0].Content, nil
}

func formatEntries(entries []models.MoodEntry) string {
	if len(entries) == 0 {
		return "Mood entries for the last 7 days: none."
	}

	var sb strings.Builder
	sb.WriteString("Mood entries for the last 7 days:\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("- %s: %s", e.Day, e.Mood.Display()))
		if note := e.NoteOrEmpty(); note != "" {
			sb.WriteString(fmt.Sprintf(" (note: %s)", note))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
