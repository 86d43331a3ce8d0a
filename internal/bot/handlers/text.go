package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kurrle/espresso-helper/internal/bot/keyboards"
	"github.com/kurrle/espresso-helper/internal/bot/menus"
	"github.com/kurrle/espresso-helper/internal/bot/state"
	"github.com/kurrle/espresso-helper/internal/database"
	"github.com/kurrle/espresso-helper/internal/domain"
	"github.com/kurrle/espresso-helper/internal/logger"
	"github.com/kurrle/espresso-helper/internal/services"
	"github.com/kurrle/espresso-helper/internal/utils"
)

// TextHandler handles text messages
type TextHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a text message according to the user's dialog state
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	switch h.stateManager.GetUserState(user.TelegramID) {
	case state.WaitingForShot:
		return h.handleShotInput(ctx, message, user)
	case state.WaitingForBean:
		return h.handleBeanInput(ctx, message, user)
	case state.WaitingForReviewNotes:
		return h.handleReviewNotes(ctx, message, user)
	case state.WaitingForTasteDescription:
		return h.handleTasteDescription(ctx, message, user)
	default:
		msg := tgbotapi.NewMessage(message.Chat.ID, "Use the menu to log a shot or manage beans.")
		msg.ReplyMarkup = keyboards.MainMenu()
		_, err := h.api.Send(msg)
		return err
	}
}

func (h *TextHandler) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := h.api.Send(msg)
	return err
}

// parseShotLine parses "grind dose yield seconds" into a ShotInput.
func parseShotLine(line string) (services.ShotInput, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return services.ShotInput{}, fmt.Errorf("expected 4 values, got %d", len(fields))
	}

	grind, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return services.ShotInput{}, fmt.Errorf("grind size %q is not a number", fields[0])
	}
	dose, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return services.ShotInput{}, fmt.Errorf("dose %q is not a number", fields[1])
	}
	yield, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return services.ShotInput{}, fmt.Errorf("yield %q is not a number", fields[2])
	}
	seconds, err := strconv.Atoi(fields[3])
	if err != nil {
		return services.ShotInput{}, fmt.Errorf("time %q is not a whole number of seconds", fields[3])
	}

	return services.ShotInput{
		GrindSize:         grind,
		DoseGrams:         dose,
		YieldGrams:        yield,
		ExtractionSeconds: seconds,
	}, nil
}

// handleShotInput parses the measurement line and creates the shot
func (h *TextHandler) handleShotInput(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	lines := strings.SplitN(strings.TrimSpace(message.Text), "\n", 2)

	input, err := parseShotLine(lines[0])
	if err != nil {
		return h.sendText(message.Chat.ID, fmt.Sprintf("⚠️ Could not read the measurements (%v).\nSend them as \"grind dose yield seconds\", e.g. \"9.5 18 36 28\", or /cancel.", err))
	}
	if len(lines) == 2 {
		input.Notes = strings.TrimSpace(lines[1])
	}

	if v, ok := h.stateManager.GetTempData(user.TelegramID, "shot_bean_id"); ok {
		if beanID, valid := tempUint(v); valid && beanID != 0 {
			input.BeanID = &beanID
		}
	}

	shot, err := h.deps.ShotSvc.CreateShot(ctx, user.ID, input)
	if err != nil {
		logger.Errorf("Failed to create shot for user %d: %v", user.ID, err)
		return h.sendText(message.Chat.ID, friendlyError(err))
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	h.stateManager.ClearTempData(user.TelegramID)

	text := fmt.Sprintf("✅ Shot logged: %s → %s (%s) in %ds.\n\nHow did it taste? A review unlocks dial-in advice.",
		utils.FormatGrams(shot.DoseGrams),
		utils.FormatGrams(shot.YieldGrams),
		utils.FormatBrewRatio(shot.BrewRatio()),
		shot.ExtractionSeconds,
	)
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = keyboards.ShotActions(shot.ID, false, h.deps.AISvc.Enabled())
	_, err = h.api.Send(msg)
	return err
}

// parseRoast maps free-form roast input ("medium-dark", "Medium Dark") to a
// RoastLevel.
func parseRoast(s string) (domain.RoastLevel, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	return domain.ParseRoastLevel(normalized)
}

// handleBeanInput parses "name; roast; origin; flavor notes" and saves the bean
func (h *TextHandler) handleBeanInput(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	parts := strings.Split(message.Text, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	input := services.BeanInput{Name: parts[0], RoastLevel: domain.RoastMedium}
	if len(parts) > 1 && parts[1] != "" {
		roast, err := parseRoast(parts[1])
		if err != nil {
			return h.sendText(message.Chat.ID, "⚠️ Unknown roast level. Use one of: light, medium-light, medium, medium-dark, dark.")
		}
		input.RoastLevel = roast
	}
	if len(parts) > 2 {
		input.Origin = parts[2]
	}
	if len(parts) > 3 {
		input.FlavorNotes = strings.Join(parts[3:], "; ")
	}

	bean, err := h.deps.BeanSvc.CreateBean(ctx, user.ID, input)
	if err != nil {
		logger.Errorf("Failed to create bean for user %d: %v", user.ID, err)
		return h.sendText(message.Chat.ID, friendlyError(err))
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	h.stateManager.ClearTempData(user.TelegramID)

	if err := h.sendText(message.Chat.ID, fmt.Sprintf("✅ Bean %q saved.", bean.Name)); err != nil {
		return err
	}

	beans, err := h.deps.BeanSvc.ListBeans(ctx, user.ID, database.Page{Size: database.DefaultPageSize})
	if err != nil {
		return h.sendText(message.Chat.ID, friendlyError(err))
	}
	return menus.SendBeanList(h.api, message.Chat.ID, beans)
}

// handleReviewNotes finishes a manual review started from the taste compass
func (h *TextHandler) handleReviewNotes(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	shotVal, okShot := h.stateManager.GetTempData(user.TelegramID, "review_shot_id")
	profileVal, okProfile := h.stateManager.GetTempData(user.TelegramID, "review_profile")
	shotID, validID := tempUint(shotVal)
	if !okShot || !okProfile || !validID {
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return h.sendText(message.Chat.ID, "⚠️ This review expired. Open the shot and try again.")
	}

	profileStr, _ := profileVal.(string)
	profile, err := domain.ParseTasteProfile(profileStr)
	if err != nil {
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return h.sendText(message.Chat.ID, "⚠️ This review expired. Open the shot and try again.")
	}

	notes := strings.TrimSpace(message.Text)
	if notes == "-" {
		notes = ""
	}

	review, err := h.deps.ShotSvc.ReviewShot(ctx, user.ID, shotID, profile, notes)
	if err != nil {
		return h.sendText(message.Chat.ID, friendlyError(err))
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	h.stateManager.ClearTempData(user.TelegramID)

	shot, err := h.deps.ShotSvc.FindShotWithDetails(ctx, user.ID, shotID)
	if err != nil {
		return h.sendText(message.Chat.ID, friendlyError(err))
	}

	advice := h.deps.AdviceSvc.Advise(shot, review)
	return menus.SendRecommendation(h.api, message.Chat.ID, shot, advice, h.deps.AISvc.Enabled())
}

// handleTasteDescription runs the free-text description through the AI
// classifier and asks for confirmation before anything is saved
func (h *TextHandler) handleTasteDescription(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	shotVal, ok := h.stateManager.GetTempData(user.TelegramID, "ai_shot_id")
	shotID, validID := tempUint(shotVal)
	if !ok || !validID {
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return h.sendText(message.Chat.ID, "⚠️ This analysis expired. Open the shot and try again.")
	}

	description := strings.TrimSpace(message.Text)
	if description == "" {
		return h.sendText(message.Chat.ID, "Describe the taste in a sentence or two, or /cancel.")
	}

	if err := h.sendText(message.Chat.ID, "🤖 Analyzing your description..."); err != nil {
		return err
	}

	suggestion, err := h.deps.AISvc.ClassifyTaste(ctx, description)
	if err != nil {
		logger.Errorf("Taste classification failed for user %d: %v", user.ID, err)
		msg := tgbotapi.NewMessage(message.Chat.ID, "❌ Could not analyze the description. Pick the taste manually instead.")
		msg.ReplyMarkup = keyboards.TasteProfiles(shotID)
		_, err := h.api.Send(msg)
		return err
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	h.stateManager.SetTempData(user.TelegramID, "ai_description", description)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🤖 Sounds like: *%s*\n", suggestion.Profile.DisplayName()))
	if suggestion.Confidence != "" {
		b.WriteString(fmt.Sprintf("Confidence: %s\n", suggestion.Confidence))
	}
	if suggestion.Reasoning != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", suggestion.Reasoning))
	}
	b.WriteString("\nSave this as the shot's review?")

	msg := tgbotapi.NewMessage(message.Chat.ID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.AIConfirm(shotID, suggestion.Profile)
	_, err = h.api.Send(msg)
	return err
}
