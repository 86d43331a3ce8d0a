package keyboards

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kurrle/espresso-helper/internal/database"
	"github.com/kurrle/espresso-helper/internal/domain"
)

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("☕ Log shot", "new_shot"),
			tgbotapi.NewInlineKeyboardButtonData("📋 My shots", "my_shots"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🫘 Beans", "beans"),
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", "help"),
		),
	)
}

// BeanSelection lists the user's active beans for attaching to a new shot.
// "Unknown bean" logs the shot without a bean link.
func BeanSelection(beans []database.CoffeeBean) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, bean := range beans {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🫘 "+bean.Name, fmt.Sprintf("shot_bean:%d", bean.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❔ Unknown bean", "shot_bean:0"),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// ShotList creates one page of shot buttons with paging controls.
func ShotList(shots []database.EspressoShot, page int, hasMore bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, shot := range shots {
		label := fmt.Sprintf("%s — %s", shot.CreatedAt.Format("Jan 2 15:04"), shot.BeanName())
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("shot:%d", shot.ID)),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ Newer", fmt.Sprintf("shots_page:%d", page-1)))
	}
	if hasMore {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️ Older", fmt.Sprintf("shots_page:%d", page+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(nav...))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// ShotActions creates the action keyboard for one shot.
func ShotActions(shotID uint, reviewed, aiEnabled bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⭐ Review taste", fmt.Sprintf("review:%d", shotID)),
		),
	}

	if aiEnabled {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🤖 Describe taste", fmt.Sprintf("describe:%d", shotID)),
		))
	}
	if reviewed {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Recommendation", fmt.Sprintf("recommend:%d", shotID)),
		))
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Delete shot", fmt.Sprintf("delete_shot:%d", shotID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ My shots", "my_shots"),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// TasteProfiles lays out the 9 compass positions for reviewing a shot.
func TasteProfiles(shotID uint) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, profile := range domain.AllTasteProfiles() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(profile.DisplayName(), fmt.Sprintf("profile:%d:%s", shotID, profile)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Back", fmt.Sprintf("shot:%d", shotID)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// BeanList creates the bean management keyboard. Retired beans are marked.
func BeanList(beans []database.CoffeeBean) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, bean := range beans {
		label := "🫘 " + bean.Name
		if !bean.Active {
			label = "📦 " + bean.Name + " (retired)"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("bean:%d", bean.ID)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add bean", "add_bean"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// BeanActions creates the action keyboard for one bean.
func BeanActions(bean *database.CoffeeBean) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if bean.Active {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Retire", fmt.Sprintf("deactivate_bean:%d", bean.ID)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Delete", fmt.Sprintf("delete_bean:%d", bean.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Beans", "beans"),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// AIConfirm asks the user to accept or override an AI taste suggestion.
func AIConfirm(shotID uint, profile domain.TasteProfile) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Save review", fmt.Sprintf("ai_confirm:%d:%s", shotID, profile)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Pick manually", fmt.Sprintf("review:%d", shotID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}
