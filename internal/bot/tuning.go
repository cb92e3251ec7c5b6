package bot

import botinternal "mendikot/internal/bot/internal"

// DefaultTuning values tens far above tricks and spends trumps reluctantly
// until the endgame.
var DefaultTuning = botinternal.BotTuning{
	Opening: botinternal.PhaseWeights{
		WinTrickBonus:        1.0,
		TenCaptureBonus:      4.0,
		TenLossPenalty:       5.0,
		FeedPartnerBonus:     3.0,
		TrumpCost:            2.0,
		RankCost:             0.1,
		BossLeadBonus:        2.0,
		LongSuitLeadBonus:    0.3,
		ExhaustedLeadPenalty: 1.5,
		PartnerVoidLeadBonus: 1.0,
		UnsecuredWinFactor:   0.4,
	},
	Mid: botinternal.PhaseWeights{
		WinTrickBonus:        1.0,
		TenCaptureBonus:      4.0,
		TenLossPenalty:       5.0,
		FeedPartnerBonus:     3.0,
		TrumpCost:            1.5,
		RankCost:             0.1,
		BossLeadBonus:        2.0,
		LongSuitLeadBonus:    0.2,
		ExhaustedLeadPenalty: 1.5,
		PartnerVoidLeadBonus: 1.0,
		UnsecuredWinFactor:   0.5,
	},
	End: botinternal.PhaseWeights{
		WinTrickBonus:        1.5,
		TenCaptureBonus:      4.0,
		TenLossPenalty:       5.0,
		FeedPartnerBonus:     3.0,
		TrumpCost:            0.5,
		RankCost:             0.05,
		BossLeadBonus:        2.5,
		LongSuitLeadBonus:    0.0,
		ExhaustedLeadPenalty: 1.0,
		PartnerVoidLeadBonus: 0.5,
		UnsecuredWinFactor:   0.6,
	},
}
