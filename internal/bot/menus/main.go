package menus

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kurrle/espresso-helper/internal/bot/keyboards"
	"github.com/kurrle/espresso-helper/internal/database"
	"github.com/kurrle/espresso-helper/internal/services"
	"github.com/kurrle/espresso-helper/internal/utils"
)

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api *tgbotapi.BotAPI, chatID int64) error {
	text := `☕ *Espresso Helper* — your dial-in companion

Log a shot, rate its taste on the dial-in compass, and get a concrete
grind and yield adjustment for the next one.

• ☕ Log shot — record grind, dose, yield and time
• 📋 My shots — browse, review and diagnose past shots
• 🫘 Beans — manage your coffees

Pick an action:`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendShotList sends one page of the user's shots, newest first.
func SendShotList(api *tgbotapi.BotAPI, chatID int64, shots []database.EspressoShot, page int, hasMore bool) error {
	if len(shots) == 0 && page == 0 {
		msg := tgbotapi.NewMessage(chatID, "No shots logged yet. Pull one and log it!")
		msg.ReplyMarkup = keyboards.MainMenu()
		_, err := api.Send(msg)
		return err
	}

	var b strings.Builder
	b.WriteString("📋 Your shots (newest first):\n\n")
	for _, shot := range shots {
		b.WriteString(fmt.Sprintf("🕒 %s — %s, %s → %s (%s) in %ds\n",
			shot.CreatedAt.Format("Jan 2 15:04"),
			shot.BeanName(),
			utils.FormatGrams(shot.DoseGrams),
			utils.FormatGrams(shot.YieldGrams),
			utils.FormatBrewRatio(shot.BrewRatio()),
			shot.ExtractionSeconds,
		))
	}
	b.WriteString("\nTap a shot for details:")

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = keyboards.ShotList(shots, page, hasMore)
	_, err := api.Send(msg)
	return err
}

// SendShotDetail sends one shot's parameters and review state with its
// action keyboard.
func SendShotDetail(api *tgbotapi.BotAPI, chatID int64, shot *database.EspressoShot, aiEnabled bool) error {
	var b strings.Builder
	b.WriteString("☕ Shot details\n\n")
	b.WriteString(fmt.Sprintf("🫘 Bean: %s\n", shot.BeanName()))
	b.WriteString(fmt.Sprintf("⚙️ Grind size: %s\n", utils.FormatGrind(shot.GrindSize)))
	b.WriteString(fmt.Sprintf("⚖️ Dose: %s\n", utils.FormatGrams(shot.DoseGrams)))
	b.WriteString(fmt.Sprintf("💧 Yield: %s\n", utils.FormatGrams(shot.YieldGrams)))
	b.WriteString(fmt.Sprintf("⏱️ Time: %ds\n", shot.ExtractionSeconds))
	b.WriteString(fmt.Sprintf("📐 Ratio: %s\n", utils.FormatBrewRatio(shot.BrewRatio())))
	if shot.Notes != "" {
		b.WriteString(fmt.Sprintf("📝 Notes: %s\n", shot.Notes))
	}

	b.WriteString("\n")
	if shot.Review != nil {
		b.WriteString(fmt.Sprintf("⭐ Review: %s\n", shot.Review.TasteProfile.DisplayName()))
		if shot.Review.Notes != "" {
			b.WriteString(fmt.Sprintf("💬 \"%s\"\n", shot.Review.Notes))
		}
	} else {
		b.WriteString("⭐ Not reviewed yet\n")
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = keyboards.ShotActions(shot.ID, shot.Review != nil, aiEnabled)
	_, err := api.Send(msg)
	return err
}

// SendBeanList sends the bean management menu.
func SendBeanList(api *tgbotapi.BotAPI, chatID int64, beans []database.CoffeeBean) error {
	var text string
	if len(beans) == 0 {
		text = "No beans saved yet. Add the coffee you are dialing in."
	} else {
		var b strings.Builder
		b.WriteString("🫘 Your beans:\n\n")
		for _, bean := range beans {
			line := fmt.Sprintf("• %s (%s)", bean.Name, bean.RoastLevel.DisplayName())
			if bean.Origin != "" {
				line += " — " + bean.Origin
			}
			if !bean.Active {
				line += " [retired]"
			}
			b.WriteString(line + "\n")
		}
		text = b.String()
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.BeanList(beans)
	_, err := api.Send(msg)
	return err
}

// SendBeanDetail sends one bean with its action keyboard.
func SendBeanDetail(api *tgbotapi.BotAPI, chatID int64, bean *database.CoffeeBean) error {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🫘 %s\n\n", bean.Name))
	b.WriteString(fmt.Sprintf("🔥 Roast: %s\n", bean.RoastLevel.DisplayName()))
	if bean.Origin != "" {
		b.WriteString(fmt.Sprintf("🌍 Origin: %s\n", bean.Origin))
	}
	if bean.FlavorNotes != "" {
		b.WriteString(fmt.Sprintf("🍫 Flavor notes: %s\n", bean.FlavorNotes))
	}
	if !bean.Active {
		b.WriteString("\n📦 This bean is retired and hidden from shot entry.\n")
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = keyboards.BeanActions(bean)
	_, err := api.Send(msg)
	return err
}

// SendRecommendation sends the dial-in guidance for a reviewed shot.
func SendRecommendation(api *tgbotapi.BotAPI, chatID int64, shot *database.EspressoShot, advice services.Advice, aiEnabled bool) error {
	var b strings.Builder
	b.WriteString("🎯 Dial-in recommendations\n\n")
	b.WriteString(fmt.Sprintf("🫘 %s — %s → %s (%s), grind %s, %ds\n",
		shot.BeanName(),
		utils.FormatGrams(shot.DoseGrams),
		utils.FormatGrams(shot.YieldGrams),
		utils.FormatBrewRatio(shot.BrewRatio()),
		utils.FormatGrind(shot.GrindSize),
		shot.ExtractionSeconds,
	))
	b.WriteString(fmt.Sprintf("⭐ Review: %s\n\n", advice.Profile.DisplayName()))

	if advice.Balanced {
		b.WriteString("🎉 Perfect shot! Your espresso is well balanced.\n")
		b.WriteString("Keep these parameters for this bean!\n")
	} else {
		b.WriteString(fmt.Sprintf("👉 %s\n\n", advice.Summary))
		for _, adj := range advice.Adjustments {
			b.WriteString(fmt.Sprintf("• %s: try %.1f%s → %.1f%s\n  %s\n",
				adj.Action, adj.Current, adj.Unit, adj.Suggested, adj.Unit, adj.Explanation))
		}
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = keyboards.ShotActions(shot.ID, true, aiEnabled)
	_, err := api.Send(msg)
	return err
}
