package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/frontier"
)

// Ensure RobotsSource implements frontier.RobotsSource at compile time.
var _ frontier.RobotsSource = (*RobotsSource)(nil)

// RobotsSource fetches robots.txt for a host and parses it into the
// prefix-list policy model the engine evaluates. The engine needs the
// raw allow/disallow prefixes rather than an opaque matcher, which is
// why parsing is done here instead of through a robots library.
type RobotsSource struct {
	client    *http.Client
	userAgent string
}

// NewRobotsSource creates a RobotsSource. If client is nil,
// http.DefaultClient is used. userAgent selects the robots.txt group;
// empty falls back to frontier.DefaultUserAgent.
func NewRobotsSource(client *http.Client, userAgent string) *RobotsSource {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = frontier.DefaultUserAgent
	}
	return &RobotsSource{client: client, userAgent: userAgent}
}

// Policy fetches and parses robots.txt for the host.
// Returns ENOTFOUND if the host serves no robots.txt (4xx), so callers
// can distinguish "no policy" from transport failures.
func (s *RobotsSource) Policy(ctx context.Context, scheme, host string) (*frontier.RobotsPolicy, error) {
	if scheme == "" {
		scheme = "https"
	}
	robotsURL := scheme + "://" + host + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, frontier.Errorf(frontier.EINVALID, "invalid robots URL %q: %v", robotsURL, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, frontier.Errorf(frontier.ENOTFOUND, "no robots.txt for %s", host)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, frontier.Errorf(frontier.EINTERNAL, "robots.txt for %s returned HTTP %d", host, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	return ParseRobots(string(body), s.userAgent), nil
}

// ParseRobots parses robots.txt content into a policy for the given
// user agent. Rules from a group whose User-agent token is a
// case-insensitive substring of userAgent take precedence; otherwise
// the wildcard group applies. Crawl-delay accepts fractional seconds.
func ParseRobots(content, userAgent string) *frontier.RobotsPolicy {
	type group struct {
		agents   []string
		policy   frontier.RobotsPolicy
		hasRules bool
	}

	var groups []*group
	var current *group
	inAgentRun := false // consecutive User-agent lines share one group

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx != -1 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		field = strings.ToLower(strings.TrimSpace(field))
		value = strings.TrimSpace(value)

		switch field {
		case "user-agent":
			if !inAgentRun {
				current = &group{}
				groups = append(groups, current)
				inAgentRun = true
			}
			current.agents = append(current.agents, strings.ToLower(value))
		case "allow":
			inAgentRun = false
			if current != nil && value != "" {
				current.policy.AllowedPaths = append(current.policy.AllowedPaths, value)
				current.hasRules = true
			}
		case "disallow":
			inAgentRun = false
			if current != nil && value != "" {
				current.policy.DisallowedPaths = append(current.policy.DisallowedPaths, value)
				current.hasRules = true
			}
		case "crawl-delay":
			inAgentRun = false
			if current != nil {
				if secs, err := strconv.ParseFloat(value, 64); err == nil && secs >= 0 {
					current.policy.CrawlDelay = time.Duration(secs * float64(time.Second))
					current.hasRules = true
				}
			}
		default:
			inAgentRun = false
		}
	}

	ua := strings.ToLower(userAgent)
	var wildcard *frontier.RobotsPolicy
	for _, g := range groups {
		for _, agent := range g.agents {
			if agent == "*" {
				if wildcard == nil {
					p := g.policy
					wildcard = &p
				}
				continue
			}
			if strings.Contains(ua, agent) && g.hasRules {
				p := g.policy
				return &p
			}
		}
	}
	if wildcard != nil {
		return wildcard
	}
	return &frontier.RobotsPolicy{}
}
