package mock

import (
	"context"

	"github.com/fwojciec/frontier"
)

var _ frontier.RobotsSource = (*RobotsSource)(nil)

// RobotsSource is a mock implementation of frontier.RobotsSource.
type RobotsSource struct {
	PolicyFn func(ctx context.Context, scheme, host string) (*frontier.RobotsPolicy, error)
}

func (r *RobotsSource) Policy(ctx context.Context, scheme, host string) (*frontier.RobotsPolicy, error) {
	return r.PolicyFn(ctx, scheme, host)
}

var _ frontier.SeedSource = (*SeedSource)(nil)

// SeedSource is a mock implementation of frontier.SeedSource.
type SeedSource struct {
	DiscoverFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SeedSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverFn(ctx, baseURL)
}
