package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"upvotes_analyzer/pkg/logger"
)

type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}

// CommandHandler отвечает на команду бота; args — всё после "/cmd ".
type CommandHandler func(ctx context.Context, args string) string

// Telegram — нотифайер в один чат + long-polling команд.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64

	mu       sync.RWMutex
	handlers map[string]CommandHandler
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{
		bot:      b,
		chatID:   chatID,
		handlers: make(map[string]CommandHandler),
	}, nil
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	if _, err := t.bot.Send(tgbot.NewMessage(t.chatID, msg)); err != nil {
		logger.Error("telegram: send: %v", err)
	}
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

// Handle регистрирует обработчик команды (без слеша).
func (t *Telegram) Handle(command string, h CommandHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[strings.ToLower(command)] = h
}

func (t *Telegram) handler(command string) (CommandHandler, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	h, ok := t.handlers[strings.ToLower(command)]
	return h, ok
}

// allowed: если chatID задан, команды принимаем только из него.
func (t *Telegram) allowed(chatID int64) bool {
	return t.chatID == 0 || t.chatID == chatID
}

func (t *Telegram) reply(msg *tgbot.Message, text string) {
	out := tgbot.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	if _, err := t.bot.Send(out); err != nil {
		logger.Error("telegram: reply: %v", err)
	}
}

// Start: long-polling для messages.
func (t *Telegram) Start(ctx context.Context) error {
	if t == nil || t.bot == nil {
		return nil
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				t.dispatch(ctx, upd.Message, t.reply)
			}
		}
	}()
	return nil
}

// dispatch запускает обработчик и ответ в отдельной горутине:
// расчёт может быть долгим, polling его не ждёт.
func (t *Telegram) dispatch(ctx context.Context, msg *tgbot.Message, send func(*tgbot.Message, string)) {
	if msg == nil || msg.Chat == nil || !msg.IsCommand() || !t.allowed(msg.Chat.ID) {
		return
	}
	h, ok := t.handler(msg.Command())
	if !ok {
		return
	}
	go func() {
		send(msg, h(ctx, msg.CommandArguments()))
	}()
}

func (t *Telegram) Stop() {
	if t == nil || t.bot == nil {
		return
	}
	t.bot.StopReceivingUpdates()
}

// Stdout — заглушка, всё пишет в лог.
type Stdout struct{}

func NewStdout() *Stdout                           { return &Stdout{} }
func (s *Stdout) Send(msg string)                  { logger.Info("%s", msg) }
func (s *Stdout) Sendf(format string, args ...any) { logger.Info(format, args...) }
