package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jarvisgaming/TaikoBot_Go/internal/logger"
	"github.com/jarvisgaming/TaikoBot_Go/internal/repository"
)

// RegisterUserRequest represents the request to register an osu! account.
type RegisterUserRequest struct {
	DiscordID string `json:"discord_id" validate:"required,max=64"`
	OsuID     int    `json:"osu_id" validate:"required,gt=0"`
	Username  string `json:"username" validate:"required,max=64"`
}

// HandleRegisterUser handles linking a Discord account to an osu! account.
// Registration is idempotent: re-registering an existing Discord ID refreshes
// the stored osu! ID and username without touching progression.
func HandleRegisterUser(userRepo repository.User) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode register user request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Register user validation failed", "errors", FormatValidationError(err))
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  ErrMsgInvalidRequestError,
				"fields": FormatValidationError(err),
			})
			return
		}

		user, err := userRepo.RegisterUser(r.Context(), req.DiscordID, req.OsuID, req.Username)
		if err != nil {
			log.Error("Failed to register user", "error", err, "discord_id", req.DiscordID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("User registered",
			"user_id", user.ID,
			"discord_id", user.DiscordID,
			"osu_id", user.OsuID,
			"username", user.Username)

		respondJSON(w, http.StatusCreated, user)
	}
}
