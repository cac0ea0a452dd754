package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Rrens/content-creator-bot/internal/api/response"
	"github.com/Rrens/content-creator-bot/internal/telegram"
	"github.com/rs/zerolog/log"
)

// TelegramWebhook receives Bot API updates for the launcher bot
func TelegramWebhook(bot *telegram.Bot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !bot.VerifySecret(r.Header.Get("X-Telegram-Bot-Api-Secret-Token")) {
			response.Unauthorized(w, "invalid webhook secret")
			return
		}

		var update telegram.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			response.BadRequest(w, "invalid update")
			return
		}

		// Telegram retries non-2xx responses, so delivery failures are only logged
		if err := bot.HandleUpdate(r.Context(), update); err != nil {
			log.Error().Err(err).Int64("update_id", update.UpdateID).Msg("Failed to handle telegram update")
		}

		response.OK(w, map[string]bool{"ok": true})
	}
}
