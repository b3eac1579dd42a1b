package sender

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"solid-principles/internal/config"
	"solid-principles/internal/customer"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	// Telegram message hard limit is 4096 chars; keep some safety margin.
	telegramMsgLimit = 4000
)

var ErrNoChatID = errors.New("no telegram chat id for customer")

// TelegramSender delivers messages to a customer's Telegram chat. Customers
// without their own chat id go to the configured default chat.
type TelegramSender struct {
	bot           *tgbotapi.BotAPI
	defaultChatID int64
	limiter       *DailyLimiter
}

func NewTelegramSender(cfg config.Telegram) (*TelegramSender, error) {
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, endpoint, &http.Client{Timeout: cfg.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return &TelegramSender{
		bot:           bot,
		defaultChatID: cfg.ChatID,
	}, nil
}

// SetDailyLimiter caps how many messages each chat receives per day.
func (t *TelegramSender) SetDailyLimiter(l *DailyLimiter) *TelegramSender {
	t.limiter = l
	return t
}

// Send escapes the message for HTML parse mode and splits it into parts
// when it exceeds the Telegram length limit.
func (t *TelegramSender) Send(ctx context.Context, c customer.Customer, message string) error {
	chatID := c.TelegramChatID
	if chatID == 0 {
		chatID = t.defaultChatID
	}
	if chatID == 0 {
		return ErrNoChatID
	}
	if t.limiter != nil {
		if _, ok := t.limiter.Reserve(chatID, time.Now()); !ok {
			return fmt.Errorf("chat %d: %w", chatID, ErrDailyLimitExceeded)
		}
	}

	for _, part := range splitByLimit(escapeTelegramHTML(message), telegramMsgLimit) {
		if err := t.sendOne(ctx, chatID, part); err != nil {
			// only delivered messages count against the budget
			if t.limiter != nil {
				t.limiter.Release(chatID, time.Now())
			}
			return err
		}
	}
	return nil
}

func (t *TelegramSender) sendOne(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	// tgbotapi doesn't accept ctx, so check between parts.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// escapeTelegramHTML escapes the characters HTML parse mode reserves.
func escapeTelegramHTML(s string) string {
	// '&' first, or the other entities get double escaped.
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// splitByLimit packs whole lines into chunks of at most limit bytes and
// hard splits lines that are longer than limit on their own. text must be
// already escaped; a cut never lands inside a rune or an HTML entity.
func splitByLimit(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var (
		out []string
		cur strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}

	for _, ln := range strings.Split(text, "\n") {
		sep := 0
		if cur.Len() > 0 {
			sep = 1
		}
		if cur.Len()+sep+len(ln) <= limit {
			if sep == 1 {
				cur.WriteByte('\n')
			}
			cur.WriteString(ln)
			continue
		}

		flush()
		for len(ln) > limit {
			i := safeCut(ln, limit)
			out = append(out, ln[:i])
			ln = ln[i:]
		}
		cur.WriteString(ln)
	}

	flush()
	return out
}

// longestEntity is the longest entity escapeTelegramHTML produces ("&amp;").
const longestEntity = len("&amp;")

// safeCut returns the largest i <= limit such that s[:i] ends on a rune
// boundary and outside an entity.
func safeCut(s string, limit int) int {
	i := limit
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}

	from := max(0, i-longestEntity+1)
	if amp := strings.LastIndexByte(s[from:i], '&'); amp >= 0 {
		amp += from
		if !strings.Contains(s[amp:i], ";") {
			i = amp
		}
	}

	if i == 0 {
		// limit is smaller than a single rune or entity
		return limit
	}
	return i
}
