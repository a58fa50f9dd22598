package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"oriental_miniapp_backend/internal/config"
	"oriental_miniapp_backend/internal/model"
	"oriental_miniapp_backend/internal/repository"
	"oriental_miniapp_backend/internal/service"
	"oriental_miniapp_backend/pkg/logger"
)

// Bot Mini App 的配套机器人：入口、订阅检查和简单查询
type Bot struct {
	api          *tgbotapi.BotAPI
	cfg          *config.Config
	userRepo     *repository.UserRepository
	analyticsSvc *service.AnalyticsService
}

func New(cfg *config.Config, userRepo *repository.UserRepository, analyticsSvc *service.AnalyticsService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	logger.Log.Info("机器人已授权", zap.String("username", api.Self.UserName))

	return &Bot{
		api:          api,
		cfg:          cfg,
		userRepo:     userRepo,
		analyticsSvc: analyticsSvc,
	}, nil
}

// Start 拉取更新直到 Stop 被调用
func (b *Bot) Start() {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)
	for update := range updates {
		b.handleUpdate(update)
	}
}

func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	}
}

// isSubscribed 频道未配置时放行所有人
func (b *Bot) isSubscribed(userID int64) bool {
	if b.cfg.Telegram.ChannelUsername == "" {
		return true
	}

	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			SuperGroupUsername: "@" + b.cfg.Telegram.ChannelUsername,
			UserID:             userID,
		},
	})
	if err != nil {
		logger.Log.Warn("订阅检查失败", zap.Int64("user_id", userID), zap.Error(err))
		return false
	}

	switch member.Status {
	case "creator", "administrator", "member":
		return true
	}
	return false
}

func (b *Bot) isAdmin(telegramID int64) bool {
	user, err := b.userRepo.FindByTelegramID(telegramID)
	if err != nil {
		return false
	}
	return user.IsAdmin
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		logger.Log.Warn("消息发送失败", zap.Error(err))
	}
}

func (b *Bot) findUser(telegramID int64) (*model.User, error) {
	return b.userRepo.FindByTelegramID(telegramID)
}
