package service

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"
)

// Telegram слушает апдейты и превращает их в события для диспетчера.
// Сам он сигналы не разбирает — только фильтрует источники и шлёт
// сервисные уведомления в ops-чат.
type Telegram struct {
	bot    *tgbot.BotAPI
	cfg    *config.Config
	allow  *AllowList
	events chan<- models.MessageEvent
}

func NewTelegram(cfg *config.Config, events chan models.MessageEvent) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot api: %w", err)
	}

	return &Telegram{
		bot:    b,
		cfg:    cfg,
		allow:  NewAllowList(cfg.Telegram.AllowedChatIDs, cfg.Telegram.AllowedUsernames),
		events: events,
	}, nil
}

// Send — уведомление в ops-чат. Молча no-op, если чат не настроен.
func (t *Telegram) Send(ctx context.Context, msg string) {
	if t.cfg.Telegram.OpsChatID == 0 {
		return
	}
	if _, err := t.bot.Send(tgbot.NewMessage(t.cfg.Telegram.OpsChatID, msg)); err != nil {
		logger.Warn("telegram notify: %v", err)
	}
}

func (t *Telegram) SendF(ctx context.Context, format string, args ...any) {
	t.Send(ctx, fmt.Sprintf(format, args...))
}

// Start ...
func (t *Telegram) Start(ctx context.Context) error {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message", "edited_message", "channel_post", "edited_channel_post"}

	updates := t.bot.GetUpdatesChan(u)
	for update := range updates {
		t.handleUpdate(ctx, update)
	}
	return nil
}

func (t *Telegram) Stop() {
	t.bot.StopReceivingUpdates()
}
