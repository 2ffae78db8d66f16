package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"thegame/internal/ports"
)

var (
	adjectives = []string{"Lucky", "Steady", "Bold", "Quiet", "Swift", "Patient", "Daring", "Clever", "Gentle", "Sharp"}
	nouns      = []string{"Dealer", "Joker", "Stacker", "Shuffler", "Climber", "Diver", "Keeper", "Runner", "Planner", "Signal"}
)

// Service hands out display names to new accounts and anonymous players.
type Service struct {
	accounts ports.AccountPort

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService constructs an onboarding service. accounts may be nil when the
// host has no account store; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{accounts: accounts, rng: rng}
}

// OnboardNewUser gives a freshly created account a generated display name
// and returns it.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (string, error) {
	if s.accounts == nil {
		return "", fmt.Errorf("onboarding service not configured")
	}
	name := s.FriendlyName()
	if err := s.accounts.SetDisplayName(ctx, userID, name); err != nil {
		return name, fmt.Errorf("set display name for %s: %w", userID, err)
	}
	return name, nil
}

// FriendlyName returns a random name like "SteadyDiver4821". Safe for
// concurrent use.
func (s *Service) FriendlyName() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000
	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
