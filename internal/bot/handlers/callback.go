package handlers

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kurrle/espresso-helper/internal/bot/keyboards"
	"github.com/kurrle/espresso-helper/internal/bot/menus"
	"github.com/kurrle/espresso-helper/internal/bot/state"
	"github.com/kurrle/espresso-helper/internal/database"
	"github.com/kurrle/espresso-helper/internal/domain"
	"github.com/kurrle/espresso-helper/internal/logger"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user *database.User) error {
	// Answer the callback query first
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		return err
	}

	chatID := query.Message.Chat.ID
	data := query.Data

	switch data {
	case "main_menu":
		return h.handleMainMenu(chatID, user)
	case "new_shot":
		return h.handleNewShot(ctx, chatID, user)
	case "my_shots":
		return h.handleShotList(ctx, chatID, user, 0)
	case "beans":
		return h.handleBeanList(ctx, chatID, user)
	case "add_bean":
		return h.handleAddBean(chatID, user)
	case "help":
		return h.handleHelp(chatID)
	}

	action, args := splitCallback(data)
	switch action {
	case "shot_bean":
		return h.handleShotBeanChosen(chatID, user, args)
	case "shots_page":
		page, err := strconv.Atoi(args)
		if err != nil || page < 0 {
			return h.handleUnknownCallback(chatID)
		}
		return h.handleShotList(ctx, chatID, user, page)
	case "shot":
		return h.handleShotDetail(ctx, chatID, user, args)
	case "review":
		return h.handleReview(chatID, args)
	case "profile":
		return h.handleProfileChosen(chatID, user, args)
	case "describe":
		return h.handleDescribeTaste(chatID, user, args)
	case "ai_confirm":
		return h.handleAIConfirm(ctx, chatID, user, args)
	case "recommend":
		return h.handleRecommend(ctx, chatID, user, args)
	case "delete_shot":
		return h.handleDeleteShot(ctx, chatID, user, args)
	case "bean":
		return h.handleBeanDetail(ctx, chatID, user, args)
	case "deactivate_bean":
		return h.handleDeactivateBean(ctx, chatID, user, args)
	case "delete_bean":
		return h.handleDeleteBean(ctx, chatID, user, args)
	default:
		return h.handleUnknownCallback(chatID)
	}
}

// splitCallback splits "action:arg1:arg2" into the action and the rest.
func splitCallback(data string) (string, string) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (h *CallbackHandler) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := h.api.Send(msg)
	return err
}

// handleMainMenu resets the dialog and shows the main menu
func (h *CallbackHandler) handleMainMenu(chatID int64, user *database.User) error {
	h.stateManager.SetUserState(user.TelegramID, state.None)
	h.stateManager.ClearTempData(user.TelegramID)
	return menus.SendMainMenu(h.api, chatID)
}

// handleNewShot starts shot entry by asking which bean was used
func (h *CallbackHandler) handleNewShot(ctx context.Context, chatID int64, user *database.User) error {
	beans, err := h.deps.BeanSvc.ListActiveBeans(ctx, user.ID, database.Page{Size: database.DefaultPageSize})
	if err != nil {
		logger.Errorf("Failed to list beans for user %d: %v", user.ID, err)
		return h.sendText(chatID, friendlyError(err))
	}

	msg := tgbotapi.NewMessage(chatID, "☕ Which bean did you pull?")
	msg.ReplyMarkup = keyboards.BeanSelection(beans)
	_, err = h.api.Send(msg)
	return err
}

// handleShotBeanChosen stores the chosen bean and prompts for measurements
func (h *CallbackHandler) handleShotBeanChosen(chatID int64, user *database.User, arg string) error {
	beanID, ok := parseID(arg)
	if !ok {
		return h.handleUnknownCallback(chatID)
	}

	h.stateManager.ClearTempData(user.TelegramID)
	h.stateManager.SetTempData(user.TelegramID, "shot_bean_id", beanID)
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForShot)

	text := `📏 Send the shot measurements in one line:

grind dose yield seconds

Example: "9.5 18 36 28" for grind 9.5, 18g in, 36g out, 28 seconds.
Add tasting notes on a second line if you like. /cancel to abort.`
	return h.sendText(chatID, text)
}

// handleShotList shows one page of the user's shots
func (h *CallbackHandler) handleShotList(ctx context.Context, chatID int64, user *database.User, page int) error {
	shots, err := h.deps.ShotSvc.ListShots(ctx, user.ID, database.Page{Number: page, Size: shotsPageSize})
	if err != nil {
		logger.Errorf("Failed to list shots for user %d: %v", user.ID, err)
		return h.sendText(chatID, friendlyError(err))
	}

	hasMore := len(shots) == shotsPageSize
	return menus.SendShotList(h.api, chatID, shots, page, hasMore)
}

// handleShotDetail shows one shot with its actions
func (h *CallbackHandler) handleShotDetail(ctx context.Context, chatID int64, user *database.User, arg string) error {
	shotID, ok := parseID(arg)
	if !ok {
		return h.handleUnknownCallback(chatID)
	}

	shot, err := h.deps.ShotSvc.FindShotWithDetails(ctx, user.ID, shotID)
	if err != nil {
		return h.sendText(chatID, friendlyError(err))
	}
	return menus.SendShotDetail(h.api, chatID, shot, h.deps.AISvc.Enabled())
}

// handleReview shows the taste compass for a shot
func (h *CallbackHandler) handleReview(chatID int64, arg string) error {
	shotID, ok := parseID(arg)
	if !ok {
		return h.handleUnknownCallback(chatID)
	}

	msg := tgbotapi.NewMessage(chatID, "⭐ How did the shot taste?")
	msg.ReplyMarkup = keyboards.TasteProfiles(shotID)
	_, err := h.api.Send(msg)
	return err
}

// handleProfileChosen stores the chosen taste and asks for optional notes
func (h *CallbackHandler) handleProfileChosen(chatID int64, user *database.User, args string) error {
	parts := strings.SplitN(args, ":", 2)
	if len(parts) != 2 {
		return h.handleUnknownCallback(chatID)
	}
	shotID, ok := parseID(parts[0])
	if !ok {
		return h.handleUnknownCallback(chatID)
	}
	profile, err := domain.ParseTasteProfile(parts[1])
	if err != nil {
		return h.handleUnknownCallback(chatID)
	}

	h.stateManager.ClearTempData(user.TelegramID)
	h.stateManager.SetTempData(user.TelegramID, "review_shot_id", shotID)
	h.stateManager.SetTempData(user.TelegramID, "review_profile", string(profile))
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForReviewNotes)

	text := `💬 Any tasting notes for this review? Send "-" to skip.`
	return h.sendText(chatID, text)
}

// handleDescribeTaste starts the free-text taste description flow
func (h *CallbackHandler) handleDescribeTaste(chatID int64, user *database.User, arg string) error {
	shotID, ok := parseID(arg)
	if !ok {
		return h.handleUnknownCallback(chatID)
	}
	if !h.deps.AISvc.Enabled() {
		return h.sendText(chatID, "🤖 AI taste analysis is not configured.")
	}

	h.stateManager.ClearTempData(user.TelegramID)
	h.stateManager.SetTempData(user.TelegramID, "ai_shot_id", shotID)
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForTasteDescription)

	text := `🤖 Describe the taste in your own words, e.g. "sharp and sour up front, thin body, finishes too fast". I will map it to the dial-in compass.`
	return h.sendText(chatID, text)
}

// handleAIConfirm saves an AI-suggested review after the user confirms it
func (h *CallbackHandler) handleAIConfirm(ctx context.Context, chatID int64, user *database.User, args string) error {
	parts := strings.SplitN(args, ":", 2)
	if len(parts) != 2 {
		return h.handleUnknownCallback(chatID)
	}
	shotID, ok := parseID(parts[0])
	if !ok {
		return h.handleUnknownCallback(chatID)
	}
	profile, err := domain.ParseTasteProfile(parts[1])
	if err != nil {
		return h.handleUnknownCallback(chatID)
	}

	notes := ""
	if v, ok := h.stateManager.GetTempData(user.TelegramID, "ai_description"); ok {
		if s, isStr := v.(string); isStr {
			notes = s
		}
	}

	review, err := h.deps.ShotSvc.ReviewShot(ctx, user.ID, shotID, profile, notes)
	if err != nil {
		return h.sendText(chatID, friendlyError(err))
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	h.stateManager.ClearTempData(user.TelegramID)

	shot, err := h.deps.ShotSvc.FindShotWithDetails(ctx, user.ID, shotID)
	if err != nil {
		return h.sendText(chatID, friendlyError(err))
	}

	advice := h.deps.AdviceSvc.Advise(shot, review)
	return menus.SendRecommendation(h.api, chatID, shot, advice, h.deps.AISvc.Enabled())
}

// handleRecommend shows dial-in guidance for a reviewed shot
func (h *CallbackHandler) handleRecommend(ctx context.Context, chatID int64, user *database.User, arg string) error {
	shotID, ok := parseID(arg)
	if !ok {
		return h.handleUnknownCallback(chatID)
	}

	shot, err := h.deps.ShotSvc.FindShotWithDetails(ctx, user.ID, shotID)
	if err != nil {
		return h.sendText(chatID, friendlyError(err))
	}
	if shot.Review == nil {
		msg := tgbotapi.NewMessage(chatID, "⭐ Review the shot's taste first, then I can suggest adjustments.")
		msg.ReplyMarkup = keyboards.TasteProfiles(shot.ID)
		_, err := h.api.Send(msg)
		return err
	}

	advice := h.deps.AdviceSvc.Advise(shot, shot.Review)
	return menus.SendRecommendation(h.api, chatID, shot, advice, h.deps.AISvc.Enabled())
}

// handleDeleteShot removes a shot and its review
func (h *CallbackHandler) handleDeleteShot(ctx context.Context, chatID int64, user *database.User, arg string) error {
	shotID, ok := parseID(arg)
	if !ok {
		return h.handleUnknownCallback(chatID)
	}

	if err := h.deps.ShotSvc.DeleteShot(ctx, user.ID, shotID); err != nil {
		return h.sendText(chatID, friendlyError(err))
	}

	if err := h.sendText(chatID, "🗑️ Shot deleted."); err != nil {
		return err
	}
	return h.handleShotList(ctx, chatID, user, 0)
}

// handleBeanList shows the bean management menu
func (h *CallbackHandler) handleBeanList(ctx context.Context, chatID int64, user *database.User) error {
	beans, err := h.deps.BeanSvc.ListBeans(ctx, user.ID, database.Page{Size: database.DefaultPageSize})
	if err != nil {
		logger.Errorf("Failed to list beans for user %d: %v", user.ID, err)
		return h.sendText(chatID, friendlyError(err))
	}
	return menus.SendBeanList(h.api, chatID, beans)
}

// handleBeanDetail shows one bean with its actions
func (h *CallbackHandler) handleBeanDetail(ctx context.Context, chatID int64, user *database.User, arg string) error {
	beanID, ok := parseID(arg)
	if !ok {
		return h.handleUnknownCallback(chatID)
	}

	bean, err := h.deps.BeanSvc.FindBean(ctx, user.ID, beanID)
	if err != nil {
		return h.sendText(chatID, friendlyError(err))
	}
	return menus.SendBeanDetail(h.api, chatID, bean)
}

// handleAddBean starts bean entry
func (h *CallbackHandler) handleAddBean(chatID int64, user *database.User) error {
	h.stateManager.ClearTempData(user.TelegramID)
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForBean)

	text := `🫘 Send the bean like this:

name; roast; origin; flavor notes

Roast is one of: light, medium-light, medium, medium-dark, dark.
Only the name is required, e.g. "Kenya AA; light; Nyeri; blackcurrant, tomato".`
	return h.sendText(chatID, text)
}

// handleDeactivateBean retires a bean without touching its shot history
func (h *CallbackHandler) handleDeactivateBean(ctx context.Context, chatID int64, user *database.User, arg string) error {
	beanID, ok := parseID(arg)
	if !ok {
		return h.handleUnknownCallback(chatID)
	}

	if err := h.deps.BeanSvc.DeactivateBean(ctx, user.ID, beanID); err != nil {
		return h.sendText(chatID, friendlyError(err))
	}

	if err := h.sendText(chatID, "📦 Bean retired. It stays on past shots but is hidden from new ones."); err != nil {
		return err
	}
	return h.handleBeanList(ctx, chatID, user)
}

// handleDeleteBean removes a bean; existing shots keep their record and
// show "Unknown bean"
func (h *CallbackHandler) handleDeleteBean(ctx context.Context, chatID int64, user *database.User, arg string) error {
	beanID, ok := parseID(arg)
	if !ok {
		return h.handleUnknownCallback(chatID)
	}

	if err := h.deps.BeanSvc.DeleteBean(ctx, user.ID, beanID); err != nil {
		return h.sendText(chatID, friendlyError(err))
	}

	if err := h.sendText(chatID, "🗑️ Bean deleted. Past shots keep their measurements."); err != nil {
		return err
	}
	return h.handleBeanList(ctx, chatID, user)
}

// handleHelp shows usage help
func (h *CallbackHandler) handleHelp(chatID int64) error {
	text := `❓ *How to use Espresso Helper*

*☕ Logging a shot:*
• Pick the bean you pulled (or "Unknown bean")
• Send grind, dose, yield and time in one line: "9.5 18 36 28"
• Optional tasting notes go on a second line

*⭐ Reviewing:*
• Rate the taste on the dial-in compass (sour ↔ bitter, muddy ↔ watery)
• The bot turns the rating into grind and yield adjustments

*🫘 Beans:*
• Save the coffees you are dialing in
• Retire a bag when it is finished; history stays intact`

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboard
	_, err := h.api.Send(msg)
	return err
}

// handleUnknownCallback handles unknown callbacks
func (h *CallbackHandler) handleUnknownCallback(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Unknown action. Use /start to open the menu.")
	_, err := h.api.Send(msg)
	return err
}
