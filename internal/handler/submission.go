package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jarvisgaming/TaikoBot_Go/internal/logger"
	"github.com/jarvisgaming/TaikoBot_Go/internal/submission"
)

// SubmitRecentRequest represents the request to process a user's recent scores.
type SubmitRecentRequest struct {
	DiscordID string `json:"discord_id" validate:"required,max=64"`
	// Limit caps how many recent scores are fetched. Zero means the
	// configured default.
	Limit int `json:"limit" validate:"min=0,max=100"`
}

// HandleSubmitRecent fetches the user's recent osu! scores and applies each
// one to their progression. Per-score rejections are reported inside the
// batch result with a 200 status; only infrastructure failures error out.
func HandleSubmitRecent(svc submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SubmitRecentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode submit request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Submit validation failed", "errors", FormatValidationError(err))
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  ErrMsgInvalidRequestError,
				"fields": FormatValidationError(err),
			})
			return
		}

		result, err := svc.SubmitRecent(r.Context(), req.DiscordID, req.Limit)
		if err != nil {
			log.Error("Failed to submit recent scores", "error", err, "discord_id", req.DiscordID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Recent scores processed",
			"username", result.Username,
			"processed", result.Processed,
			"accepted", result.Accepted)

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetProfile returns the user's current progression snapshot.
func HandleGetProfile(svc submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		discordID := r.URL.Query().Get("discord_id")
		if discordID == "" {
			respondError(w, http.StatusBadRequest, "Missing discord_id")
			return
		}

		profile, err := svc.GetProfile(r.Context(), discordID)
		if err != nil {
			log.Error("Failed to get profile", "error", err, "discord_id", discordID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, profile)
	}
}
