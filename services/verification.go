// services/verification.go
package services

import "cleanup-game-system/models"

// VoteTotals is the aggregate of peer votes on one cleanup claim
type VoteTotals struct {
	Legit int `json:"legit"`
	Fake  int `json:"fake"`
}

func (t VoteTotals) Total() int {
	return t.Legit + t.Fake
}

// SummarizeVotes tallies votes per category. Order doesn't matter and
// unrecognized categories are skipped so old rows never break tallying.
func SummarizeVotes(votes []models.CleanupVote) VoteTotals {
	totals := VoteTotals{}
	for _, v := range votes {
		switch models.VoteChoice(v.Vote) {
		case models.VoteLegit:
			totals.Legit++
		case models.VoteFake:
			totals.Fake++
		}
	}
	return totals
}

// Thresholds for the verification decision (persisted game balance —
// changing them never retroactively recomputes past grants)
const (
	AIAutoVerifyScore = 0.8 // AI confidence that short-circuits crowd consensus
	AIAutoRejectScore = 0.2 // low AI confidence, needs 2+ votes to reject
	ConsensusMinVotes = 3   // votes needed before the crowd decides

	// Exact thirds, so a 2-of-3 majority verifies and 1-of-3 rejects
	ConsensusVerifyRatio = 2.0 / 3.0
	ConsensusRejectRatio = 1.0 / 3.0
)

// ComputeVerificationStatus maps an AI plausibility score and the vote
// tally to the claim's next status. Pure function: the caller is the
// one that treats the stored status as a no-op baseline and stops
// evaluating once a claim reaches a terminal status.
func ComputeVerificationStatus(aiScore float64, totals VoteTotals) models.CleanupStatus {
	totalVotes := totals.Total()

	if aiScore >= AIAutoVerifyScore {
		return models.CleanupStatusVerified
	}
	if aiScore <= AIAutoRejectScore && totalVotes >= 2 {
		return models.CleanupStatusRejected
	}

	if totalVotes >= ConsensusMinVotes {
		legitRatio := float64(totals.Legit) / float64(totalVotes)
		if legitRatio >= ConsensusVerifyRatio {
			return models.CleanupStatusVerified
		}
		if legitRatio <= ConsensusRejectRatio {
			return models.CleanupStatusRejected
		}
	}

	return models.CleanupStatusPending
}
