// Package notify posts a digest of the day's top trends to Telegram.
// Best-effort delivery: the run artifact exists before this is called.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trendwatch/internal/logger"
	"trendwatch/internal/pipeline"
)

const maxMessageLen = 4000 // Telegram caps messages at ~4096 chars

// SendDigest formats the top trends and sends them as one message.
func SendDigest(token, chatID string, result *pipeline.Result, max int) error {
	msg := FormatDigest(result, max)
	if len(msg) > maxMessageLen {
		msg = FormatDigest(result, max/2)
	}
	return SendMessage(token, chatID, msg)
}

// FormatDigest renders up to max trends plus the day's global keywords.
func FormatDigest(result *pipeline.Result, max int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>Trending - %s</b>\n\n", result.GeneratedAt.Format("2006-01-02")))

	for i, t := range result.Trends {
		if i >= max {
			break
		}
		if t.URL != "" {
			b.WriteString(fmt.Sprintf("%d. <a href=\"%s\">%s</a> (%.1f, %s)\n", i+1, t.URL, t.Title, t.FinalScore, t.Source))
		} else {
			b.WriteString(fmt.Sprintf("%d. %s (%.1f, %s)\n", i+1, t.Title, t.FinalScore, t.Source))
		}
	}

	if len(result.GlobalKeywords) > 0 {
		b.WriteString("\n<i>Keywords: " + strings.Join(result.GlobalKeywords, ", ") + "</i>\n")
	}
	return b.String()
}

// SendMessage posts text to a chat with bounded retries and exponential
// backoff between attempts.
func SendMessage(token, chatID, text string) error {
	const maxRetries = 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := sendMessageOnce(token, chatID, text)
		if err == nil {
			logger.Info("digest sent", "attempt", attempt)
			return nil
		}

		logger.Warn("digest send failed", "attempt", attempt, "max", maxRetries, "error", err)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<attempt) * time.Second)
		}
	}

	return fmt.Errorf("could not send digest after %d attempts", maxRetries)
}

func sendMessageOnce(token, chatID, text string) error {
	apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token)

	payload, err := json.Marshal(map[string]any{
		"chat_id":                  chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	})
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Post(apiURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram API returned %d: %s", resp.StatusCode, body)
	}
	return nil
}
