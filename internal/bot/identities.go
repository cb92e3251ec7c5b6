package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"mendikot/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "medium", "hard"
	AvatarIndex int    `json:"avatar_index"`
}

// Level returns the identity's configured difficulty, or fallback when unset or unknown.
func (b BotIdentity) Level(fallback BotLevel) BotLevel {
	if b.Difficulty == "" {
		return fallback
	}
	level, err := ParseLevel(b.Difficulty)
	if err != nil {
		return fallback
	}
	return level
}

// syntheticBotPrefix marks seat ids handed out for identities that were never provisioned.
const syntheticBotPrefix = "bot-"

// defaultIdentities is used when no identity file was loaded.
var defaultIdentities = []BotIdentity{
	{DeviceID: "mendikot-bot-ravi", Username: "bot_ravi", DisplayName: "Ravi", Difficulty: "medium", AvatarIndex: 1},
	{DeviceID: "mendikot-bot-kiran", Username: "bot_kiran", DisplayName: "Kiran", Difficulty: "hard", AvatarIndex: 2},
	{DeviceID: "mendikot-bot-priya", Username: "bot_priya", DisplayName: "Priya", Difficulty: "easy", AvatarIndex: 3},
	{DeviceID: "mendikot-bot-arjun", Username: "bot_arjun", DisplayName: "Arjun", Difficulty: "medium", AvatarIndex: 4},
	{DeviceID: "mendikot-bot-meera", Username: "bot_meera", DisplayName: "Meera", Difficulty: "hard", AvatarIndex: 5},
	{DeviceID: "mendikot-bot-dev", Username: "bot_dev", DisplayName: "Dev", Difficulty: "easy", AvatarIndex: 6},
}

var (
	botIdentities     []BotIdentity
	botIDMap          map[string]bool
	botDisplayNameMap map[string]string
	botConfigMap      map[string]BotIdentity
	identityMu        sync.RWMutex
	loadOnce          sync.Once
	provisionOnce     sync.Once
	loadErr           error
)

// LoadIdentities loads the bot profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var identities []BotIdentity
		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		if len(identities) < domain.SeatCount {
			loadErr = fmt.Errorf("bot identity file %s holds %d identities, need at least %d", path, len(identities), domain.SeatCount)
			return
		}
		if err := checkDistinct(identities); err != nil {
			loadErr = fmt.Errorf("bot identity file %s: %w", path, err)
			return
		}
		setIdentities(identities)
	})
	return loadErr
}

// checkDistinct rejects pools where two entries would share a seat id.
func checkDistinct(identities []BotIdentity) error {
	devices := make(map[string]bool, len(identities))
	users := make(map[string]bool, len(identities))
	for _, identity := range identities {
		if identity.DeviceID != "" {
			if devices[identity.DeviceID] {
				return fmt.Errorf("duplicate device id %q", identity.DeviceID)
			}
			devices[identity.DeviceID] = true
		}
		if identity.UserID != "" {
			if users[identity.UserID] {
				return fmt.Errorf("duplicate user id %q", identity.UserID)
			}
			users[identity.UserID] = true
		}
	}
	return nil
}

func setIdentities(identities []BotIdentity) {
	identityMu.Lock()
	defer identityMu.Unlock()

	botIdentities = identities
	botIDMap = make(map[string]bool)
	botDisplayNameMap = make(map[string]string)
	botConfigMap = make(map[string]BotIdentity)
	for _, identity := range botIdentities {
		if identity.UserID != "" {
			mapIdentity(identity)
		}
	}
}

// mapIdentity must be called with identityMu held.
func mapIdentity(identity BotIdentity) {
	botIDMap[identity.UserID] = true
	botDisplayNameMap[identity.UserID] = identity.DisplayName
	botConfigMap[identity.UserID] = identity
}

func pool() []BotIdentity {
	if len(botIdentities) == 0 {
		return defaultIdentities
	}
	return botIdentities
}

// ProvisionBots ensures that bot accounts exist in the Nakama database and carry is_bot metadata.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) {
	provisionOnce.Do(func() {
		identityMu.Lock()
		defer identityMu.Unlock()

		if len(botIdentities) == 0 {
			botIdentities = append([]BotIdentity(nil), defaultIdentities...)
		}
		if botIDMap == nil {
			botIDMap = make(map[string]bool)
			botDisplayNameMap = make(map[string]string)
			botConfigMap = make(map[string]BotIdentity)
		}

		for i := range botIdentities {
			identity := &botIdentities[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, authErr := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if authErr != nil {
				logger.Error("ProvisionBots: Failed to authenticate bot %s: %v", identity.Username, authErr)
				continue
			}

			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":       true,
				"difficulty":   identity.Difficulty,
				"avatar_index": identity.AvatarIndex,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: Failed to update bot account %s: %v", userID, err)
			}

			mapIdentity(*identity)
			logger.Info("ProvisionBots: Bot %s (%s) is ready. Difficulty: %s", identity.DisplayName, userID, identity.Difficulty)
		}
	})
}

// GetBotConfig returns the full identity configuration for a given bot ID.
func GetBotConfig(userID string) (BotIdentity, bool) {
	identityMu.RLock()
	defer identityMu.RUnlock()
	config, ok := botConfigMap[userID]
	return config, ok
}

// GetBotDisplayName returns the display name for a bot ID, or an empty string if not a bot.
func GetBotDisplayName(userID string) string {
	identityMu.RLock()
	defer identityMu.RUnlock()
	if botDisplayNameMap == nil {
		return ""
	}
	return botDisplayNameMap[userID]
}

// GetBotIdentity returns an identity for a bot by index (mod pool size).
// Unprovisioned identities get a synthetic user ID so they can still take a seat.
func GetBotIdentity(index int) BotIdentity {
	identityMu.RLock()
	defer identityMu.RUnlock()
	p := pool()
	identity := p[index%len(p)]
	if identity.UserID == "" {
		identity.UserID = fmt.Sprintf("%s%d", syntheticBotPrefix, index)
	}
	return identity
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	if strings.HasPrefix(userID, syntheticBotPrefix) {
		return true
	}
	identityMu.RLock()
	defer identityMu.RUnlock()
	if botIDMap == nil {
		return false
	}
	return botIDMap[userID]
}
