package service

import (
	"context"
	"strings"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"signal_bot/internal/models"
)

func (t *Telegram) handleUpdate(ctx context.Context, update tgbot.Update) {
	// Новые сообщения: и личные/групповые, и посты каналов.
	if msg := update.Message; msg != nil {
		t.emit(ctx, models.EventNewMessage, msg)
		return
	}
	if msg := update.ChannelPost; msg != nil {
		t.emit(ctx, models.EventNewMessage, msg)
		return
	}

	// Правки — отдельный вид события: диспетчер по ним двигает SL/TP.
	if msg := update.EditedMessage; msg != nil {
		t.emit(ctx, models.EventMessageEdited, msg)
		return
	}
	if msg := update.EditedChannelPost; msg != nil {
		t.emit(ctx, models.EventMessageEdited, msg)
		return
	}
}

func (t *Telegram) emit(ctx context.Context, kind models.EventKind, msg *tgbot.Message) {
	if msg.Text == "" || msg.Chat == nil {
		return
	}

	sender := ""
	if msg.From != nil {
		sender = strings.ToLower(msg.From.UserName)
	}
	chatName := strings.ToLower(msg.Chat.UserName)

	if !t.allow.Permits(msg.Chat.ID, chatName, sender) {
		return
	}

	ev := models.MessageEvent{
		Kind: kind,
		Ref: models.MessageRef{
			ChatID:    msg.Chat.ID,
			MessageID: msg.MessageID,
		},
		Sender: sender,
		Text:   msg.Text,
	}

	select {
	case t.events <- ev:
	case <-ctx.Done():
	}
}
