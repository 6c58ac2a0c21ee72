package notify

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ChatSender 发送文本到一个chat，失败返回error由fan-out按收件人统计
type ChatSender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// TelegramSender 基于bot api的ChatSender实现
type TelegramSender struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramSender(botToken string) (*TelegramSender, error) {
	if botToken == "" {
		return nil, errors.New("telegram bot token is empty")
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &TelegramSender{bot: bot}, nil
}

func (s *TelegramSender) SendText(_ context.Context, chatID int64, text string) error {
	if chatID == 0 || text == "" {
		return nil
	}
	_, err := s.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// Bot 暴露底层bot给订阅同步组件复用同一连接
func (s *TelegramSender) Bot() *tgbotapi.BotAPI {
	return s.bot
}
