package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackCheckSubscription = "check_subscription"
	callbackMyStats           = "my_stats"
)

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "help":
		b.handleHelp(msg)
	case "stats":
		b.sendStats(msg.Chat.ID, msg.From.ID)
	case "admin":
		b.handleAdmin(msg)
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	if !b.isSubscribed(msg.From.ID) {
		b.sendSubscriptionGate(msg.Chat.ID)
		return
	}
	b.sendWelcome(msg.Chat.ID, msg.From.FirstName)
}

func (b *Bot) sendSubscriptionGate(chatID int64) {
	text := "Платформадан фойдаланиш учун аввал каналга обуна бўлинг."
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📢 Каналга ўтиш", "https://t.me/"+b.cfg.Telegram.ChannelUsername),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Обунани текшириш", callbackCheckSubscription),
		),
	)

	out := tgbotapi.NewMessage(chatID, text)
	out.ReplyMarkup = keyboard
	b.send(out)
}

func (b *Bot) sendWelcome(chatID int64, firstName string) {
	text := fmt.Sprintf("Ассалому алайкум, %s!\n\nЎқишни бошлаш учун қуйидаги тугмани босинг.", firstName)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📚 Платформани очиш", b.cfg.Telegram.MiniAppURL),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Менинг натижаларим", callbackMyStats),
		),
	)

	out := tgbotapi.NewMessage(chatID, text)
	out.ReplyMarkup = keyboard
	b.send(out)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	text := "Буйруқлар:\n" +
		"/start — платформага кириш\n" +
		"/stats — натижаларим\n" +
		"/help — ёрдам"
	b.send(tgbotapi.NewMessage(msg.Chat.ID, text))
}

func (b *Bot) sendStats(chatID, telegramID int64) {
	user, err := b.findUser(telegramID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Аввал платформада рўйхатдан ўтинг: /start"))
		return
	}

	text := fmt.Sprintf(
		"📊 Натижаларингиз:\n\n⭐ Тажриба: %d XP\n🏆 Даража: %d\n🔥 Кетма-кет кунлар: %d",
		user.XP, user.Level, user.StreakDays,
	)
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) handleAdmin(msg *tgbotapi.Message) {
	if !b.isAdmin(msg.From.ID) {
		return
	}

	stats, err := b.analyticsSvc.GetAdminStats()
	if err != nil {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "Статистикани олишда хатолик."))
		return
	}

	text := fmt.Sprintf(
		"👥 Фойдаланувчилар: %d\n🟢 7 кунлик фаоллар: %d\n📄 Материаллар: %d\n✅ Якунланганлар: %d",
		stats.TotalUsers, stats.ActiveUsers7d, stats.TotalMaterials, stats.TotalCompletions,
	)
	b.send(tgbotapi.NewMessage(msg.Chat.ID, text))
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	// 先应答回调，Telegram 客户端才会停止转圈
	b.api.Request(tgbotapi.NewCallback(query.ID, ""))

	switch query.Data {
	case callbackCheckSubscription:
		if b.isSubscribed(query.From.ID) {
			b.sendWelcome(query.Message.Chat.ID, query.From.FirstName)
		} else {
			b.send(tgbotapi.NewMessage(query.Message.Chat.ID, "Обуна топилмади. Каналга обуна бўлиб, қайта текширинг."))
		}
	case callbackMyStats:
		b.sendStats(query.Message.Chat.ID, query.From.ID)
	}
}
