// internal/infra/telegram/client.go
package telegram

import (
	"context"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// Telegram's global send budget is about 30 messages per second; staying a
// little under it keeps reminder batches clear of flood limits.
const sendsPerSecond = 25

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3
// library, pacing sends through a token bucket.
type TelebotAdapter struct {
	bot     *telebot.Bot
	limiter *rate.Limiter
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{
		bot:     b,
		limiter: rate.NewLimiter(rate.Limit(sendsPerSecond), sendsPerSecond),
	}
}

// SendMessage sends a text message to the specified recipient. It blocks on
// the rate limiter; canceling ctx releases the wait.
func (tba *TelebotAdapter) SendMessage(ctx context.Context, recipientChatID int64, text string, options *telebot.SendOptions) error {
	if err := tba.limiter.Wait(ctx); err != nil {
		return err
	}

	if options == nil {
		options = &telebot.SendOptions{}
	}

	recipient := &telebot.User{ID: recipientChatID} // Reminders go to direct user chats
	_, err := tba.bot.Send(recipient, text, options)
	return err
}
