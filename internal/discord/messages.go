package discord

// Friendly message constants for Discord responses
const (
	// Shop
	MsgNotEnoughTokens = "⚠️ **Not Enough Tokens!**\nPlay more taiko to earn tokens."
	MsgUpgradeMaxed    = "🏆 **Already Maxed**\nThat upgrade is at its highest level."
	MsgUpgradeNotFound = "❓ **Upgrade Not Found**\nMaybe check the spelling?"

	// User
	MsgUserNotFound = "👤 **Not Registered**\nLink your osu! account first with `/register`."

	// Submission
	MsgScoreAlreadySubmitted = "🥁 **Already Counted**\nThat score was submitted before."

	MsgGenericError = "❌ Something went wrong."
)
