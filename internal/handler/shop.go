package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jarvisgaming/TaikoBot_Go/internal/logger"
	"github.com/jarvisgaming/TaikoBot_Go/internal/shop"
)

// BuyUpgradeRequest represents the request to purchase upgrade levels.
type BuyUpgradeRequest struct {
	DiscordID string `json:"discord_id" validate:"required,max=64"`
	UpgradeID string `json:"upgrade_id" validate:"required,max=64"`
	// Times is how many levels to buy in one call. Zero means one.
	Times int `json:"times" validate:"min=0,max=100"`
}

// ListUpgradesResponse wraps the annotated shop catalog.
type ListUpgradesResponse struct {
	Upgrades []shop.Listing `json:"upgrades"`
}

// HandleListUpgrades returns the upgrade catalog annotated with the user's
// current levels and next costs.
func HandleListUpgrades(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		discordID := r.URL.Query().Get("discord_id")
		if discordID == "" {
			respondError(w, http.StatusBadRequest, "Missing discord_id")
			return
		}

		listings, err := svc.ListUpgrades(r.Context(), discordID)
		if err != nil {
			log.Error("Failed to list upgrades", "error", err, "discord_id", discordID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, ListUpgradesResponse{Upgrades: listings})
	}
}

// HandleBuyUpgrade purchases upgrade levels for the user. Purchases that
// stop early at max level or at an empty balance still report the levels
// that were bought.
func HandleBuyUpgrade(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req BuyUpgradeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode buy upgrade request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Buy upgrade validation failed", "errors", FormatValidationError(err))
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  ErrMsgInvalidRequestError,
				"fields": FormatValidationError(err),
			})
			return
		}

		result, err := svc.BuyUpgrade(r.Context(), req.DiscordID, req.UpgradeID, req.Times)
		if err != nil {
			log.Error("Failed to buy upgrade", "error", err,
				"discord_id", req.DiscordID, "upgrade_id", req.UpgradeID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Upgrade purchased",
			"discord_id", req.DiscordID,
			"upgrade_id", result.UpgradeID,
			"levels_bought", result.LevelsBought,
			"new_level", result.NewLevel,
			"total_cost", result.TotalCost)

		respondJSON(w, http.StatusOK, result)
	}
}
