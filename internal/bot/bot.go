package bot

import (
	"context"
	"fmt"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stpnv0/TravelBot/internal/domain"
	"github.com/wb-go/wbf/logger"
)

// Bot — long-polling транспорт Telegram. Один диалог обрабатывается
// строго последовательно: апдейты читаются из одного канала, следующий
// берётся только после ответа на предыдущий.
type Bot struct {
	api         *tgbotapi.BotAPI
	handler     *Handler
	keyboards   *Keyboards
	logger      logger.Logger
	pollTimeout int
}

func New(token string, pollTimeout int, handler *Handler, keyboards *Keyboards, log logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Bot{
		api:         api,
		handler:     handler,
		keyboards:   keyboards,
		logger:      log,
		pollTimeout: pollTimeout,
	}, nil
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("telegram bot started",
		logger.String("username", b.api.Self.UserName),
	)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram bot stopped")
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil || upd.Message.Text == "" {
		return
	}

	chatID := upd.Message.Chat.ID

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic while handling update",
				logger.Int64("chat_id", chatID),
				logger.Any("error", r),
				logger.String("stack", string(debug.Stack())),
			)
			b.send(chatID, &domain.Reply{
				Text:     "😔 Произошла ошибка. Попробуйте ещё раз.",
				Keyboard: domain.Keyboard{Kind: domain.KeyboardMain},
			})
		}
	}()

	userName := ""
	if upd.Message.From != nil {
		userName = upd.Message.From.FirstName
	}

	b.logger.Debug("incoming message",
		logger.Int64("chat_id", chatID),
		logger.String("user", userName),
		logger.String("text", upd.Message.Text),
	)

	var reply *domain.Reply
	if upd.Message.IsCommand() {
		reply = b.handler.Command(ctx, upd.Message.Command(), chatID, userName)
	}
	if reply == nil {
		reply = b.handler.HandleText(ctx, chatID, userName, upd.Message.Text)
	}

	b.send(chatID, reply)
}

func (b *Bot) send(chatID int64, reply *domain.Reply) {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = b.keyboards.Build(reply.Keyboard)

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			logger.Int64("chat_id", chatID),
			logger.String("error", err.Error()),
		)
	}
}
