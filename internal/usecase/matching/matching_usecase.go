package matching

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/belovedly/backend/internal/domain"
	"github.com/belovedly/backend/internal/repository"
)

// Score weights. Denomination dominates: a shared denomination outweighs any
// distance advantage and several shared interests.
const (
	denominationWeight   = 30.0
	interestWeight       = 5.0
	ministryWeight       = 5.0
	distanceScoreCeiling = 100.0
	distanceWeight       = 0.2
)

type MatchingUseCase struct {
	profileRepo     repository.ProfileRepository
	interactionRepo repository.InteractionRepository
	matchRepo       repository.MatchRepository

	maxDistanceMiles float64
	pageSize         int

	// Guards against overlapping fetches per user (one round trip per
	// logical operation). One user's in-flight fetch never blocks another's.
	fetching sync.Map // user id -> *atomic.Bool
}

func NewMatchingUseCase(
	profileRepo repository.ProfileRepository,
	interactionRepo repository.InteractionRepository,
	matchRepo repository.MatchRepository,
	maxDistanceMiles float64,
	pageSize int,
) *MatchingUseCase {
	return &MatchingUseCase{
		profileRepo:      profileRepo,
		interactionRepo:  interactionRepo,
		matchRepo:        matchRepo,
		maxDistanceMiles: maxDistanceMiles,
		pageSize:         pageSize,
	}
}

// Candidate is a profile eligible for display, with its distance from the
// requesting user when both locations are known.
type Candidate struct {
	Profile       *domain.Profile
	DistanceMiles *float64
}

// CandidateResponse represents a candidate in the ranked feed
type CandidateResponse struct {
	ID                 string   `json:"id"`
	FirstName          string   `json:"first_name"`
	Age                int      `json:"age"`
	Bio                *string  `json:"bio"`
	Church             *string  `json:"church"`
	Denomination       *string  `json:"denomination"`
	Interests          []string `json:"interests"`
	MinistryInterests  []string `json:"ministry_interests"`
	DistanceMiles      *float64 `json:"distance_miles,omitempty"`
	CompatibilityScore float64  `json:"compatibility_score"`
}

// FetchCandidates returns the next ranked page of candidates for userID,
// excluding everyone the user already interacted with and anyone beyond the
// maximum radius. The returned token resumes the scan; it is empty once the
// candidate pool is exhausted.
func (uc *MatchingUseCase) FetchCandidates(ctx context.Context, userID, pageToken string) ([]*CandidateResponse, string, error) {
	flag, _ := uc.fetching.LoadOrStore(userID, new(atomic.Bool))
	inFlight := flag.(*atomic.Bool)
	if !inFlight.CompareAndSwap(false, true) {
		return nil, "", domain.ErrFetchInFlight
	}
	defer inFlight.Store(false)

	me, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current user profile: %w", err)
	}

	// Already liked/disliked profiles never come back
	excluded, err := uc.interactionRepo.GetActorTargets(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get interactions: %w", err)
	}
	excluded = append(excluded, userID)

	profiles, nextToken, err := uc.profileRepo.SearchCandidates(ctx, excluded, pageToken, uc.pageSize)
	if err != nil {
		return nil, "", fmt.Errorf("failed to search candidates: %w", err)
	}

	origin := me.Location()
	var candidates []Candidate
	for _, profile := range profiles {
		var distance *float64
		if origin != nil {
			loc := profile.Location()
			if loc == nil {
				continue
			}
			d := origin.DistanceMiles(*loc)
			if d > uc.maxDistanceMiles {
				continue
			}
			distance = &d
		}
		candidates = append(candidates, Candidate{Profile: profile, DistanceMiles: distance})
	}

	ranked := RankCandidates(candidates, me)

	responses := make([]*CandidateResponse, 0, len(ranked))
	for _, c := range ranked {
		responses = append(responses, &CandidateResponse{
			ID:                 c.Profile.ID,
			FirstName:          c.Profile.FirstName,
			Age:                c.Profile.Age(),
			Bio:                c.Profile.Bio,
			Church:             c.Profile.Church,
			Denomination:       c.Profile.Denomination,
			Interests:          c.Profile.Interests,
			MinistryInterests:  c.Profile.MinistryInterests,
			DistanceMiles:      c.DistanceMiles,
			CompatibilityScore: Score(me, c.Profile, c.DistanceMiles),
		})
	}

	return responses, nextToken, nil
}

// RankCandidates orders candidates by descending compatibility score. The
// sort is stable: equal scores retain fetch order.
func RankCandidates(candidates []Candidate, me *domain.Profile) []Candidate {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(me, ranked[i].Profile, ranked[i].DistanceMiles) >
			Score(me, ranked[j].Profile, ranked[j].DistanceMiles)
	})
	return ranked
}

// Score computes the pairwise compatibility score. Scores are recomputed per
// ranking call and never persisted.
func Score(me, candidate *domain.Profile, distanceMiles *float64) float64 {
	var score float64

	// Faith compatibility (highest weight)
	if me.Denomination != nil && candidate.Denomination != nil &&
		*me.Denomination == *candidate.Denomination {
		score += denominationWeight
	}

	score += float64(sharedCount(me.Interests, candidate.Interests)) * interestWeight
	score += float64(sharedCount(me.MinistryInterests, candidate.MinistryInterests)) * ministryWeight

	// Distance factor (closer is better); contributes nothing at or beyond
	// 100 miles
	if distanceMiles != nil {
		d := *distanceMiles
		if d > distanceScoreCeiling {
			d = distanceScoreCeiling
		}
		score += (distanceScoreCeiling - d) * distanceWeight
	}

	return score
}

// sharedCount returns the cardinality of the set intersection.
func sharedCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, item := range a {
		set[item] = struct{}{}
	}
	count := 0
	seen := make(map[string]struct{}, len(b))
	for _, item := range b {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		if _, ok := set[item]; ok {
			count++
		}
	}
	return count
}

// SwipeRequest represents a swipe action
type SwipeRequest struct {
	TargetUserID string                 `json:"target_user_id" binding:"required"`
	Kind         domain.InteractionKind `json:"kind" binding:"required,interaction_kind"`
}

// SwipeResponse represents swipe result
type SwipeResponse struct {
	IsMatch     bool                `json:"is_match"`
	Interaction *domain.Interaction `json:"interaction,omitempty"`
	Match       *domain.Match       `json:"match,omitempty"`
}

// Swipe records the interaction and, for likes, checks for a mutual match.
func (uc *MatchingUseCase) Swipe(ctx context.Context, actorID string, req *SwipeRequest) (*SwipeResponse, error) {
	interaction, err := uc.RecordInteraction(ctx, actorID, req.TargetUserID, req.Kind)
	if err != nil {
		return nil, err
	}

	response := &SwipeResponse{Interaction: interaction}

	if req.Kind.IsLike() {
		match, err := uc.CheckAndCreateMatch(ctx, actorID, req.TargetUserID)
		if err != nil {
			// Interaction survived; surface the swipe even if the match
			// check failed
			fmt.Printf("match check failed for %s -> %s: %v\n", actorID, req.TargetUserID, err)
			return response, nil
		}
		if match != nil {
			response.IsMatch = true
			response.Match = match
		}
	}

	return response, nil
}

// RecordInteraction appends a like/dislike/superlike to the interaction log.
// The caller must not assume the interaction was recorded when an error is
// returned; there is no automatic retry.
func (uc *MatchingUseCase) RecordInteraction(ctx context.Context, actorID, targetID string, kind domain.InteractionKind) (*domain.Interaction, error) {
	if actorID == targetID {
		return nil, domain.ErrCannotInteractSelf
	}
	if !kind.Valid() {
		return nil, domain.ErrInvalidInteraction
	}

	interaction := &domain.Interaction{
		ActorID:  actorID,
		TargetID: targetID,
		Kind:     kind,
	}
	if err := uc.interactionRepo.Create(ctx, interaction); err != nil {
		return nil, fmt.Errorf("failed to record interaction: %w", err)
	}
	return interaction, nil
}

// CheckAndCreateMatch creates a pending match when a like in the reverse
// direction already exists, and returns nil otherwise.
//
// This is a read-then-write without a transaction: two concurrent likes from
// both sides can each miss the other's write. The repository's ordered-pair
// lookup absorbs the duplicate-create case.
func (uc *MatchingUseCase) CheckAndCreateMatch(ctx context.Context, actorID, targetID string) (*domain.Match, error) {
	mutual, err := uc.interactionRepo.HasLike(ctx, targetID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check mutual like: %w", err)
	}
	if !mutual {
		return nil, nil
	}
	return uc.createMatch(ctx, actorID, targetID)
}

// createMatch creates a match between two users
func (uc *MatchingUseCase) createMatch(ctx context.Context, user1ID, user2ID string) (*domain.Match, error) {
	// Check if match already exists
	existingMatch, err := uc.matchRepo.GetByUsers(ctx, user1ID, user2ID)
	if err == nil && existingMatch != nil {
		return existingMatch, nil
	}

	match := &domain.Match{
		User1ID: user1ID,
		User2ID: user2ID,
		Status:  domain.MatchStatusPending,
	}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

// GetMatches returns the caller's matches, newest first.
func (uc *MatchingUseCase) GetMatches(ctx context.Context, userID string, limit, offset int) ([]*domain.Match, error) {
	matches, err := uc.matchRepo.GetUserMatches(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}
	return matches, nil
}
