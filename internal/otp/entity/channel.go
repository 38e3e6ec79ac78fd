package entity

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Channel selects the time step and code length a password was issued with.
type Channel int8

const (
	ChannelUnknown Channel = 0
	// ChannelApp covers authenticator apps and push approvals.
	ChannelApp Channel = 1
	// ChannelSMS covers SMS, e-mail and printed backup codes, which need a longer step.
	ChannelSMS Channel = 2
)

var channelAliases = map[string]Channel{
	"app":    ChannelApp,
	"push":   ChannelApp,
	"sms":    ChannelSMS,
	"backup": ChannelSMS,
	"email":  ChannelSMS,
}

// ChannelFromString maps a request Type to a channel. An empty Type means
// ChannelApp; matching is case-insensitive.
func ChannelFromString(s string) Channel {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ChannelApp
	}
	if c, ok := channelAliases[s]; ok {
		return c
	}
	return ChannelUnknown
}

// ChannelNames lists accepted Type values in stable order.
func ChannelNames() []string {
	names := lo.Keys(channelAliases)
	slices.Sort(names)
	return names
}

// Channels lists the known channels.
func Channels() []Channel {
	return lo.Uniq(lo.Values(channelAliases))
}

func (c Channel) String() string {
	switch c {
	case ChannelApp:
		return "app"
	case ChannelSMS:
		return "sms"
	default:
		return "unknown"
	}
}

// ChannelPolicy is the per-channel OTP configuration.
type ChannelPolicy struct {
	StepSeconds    int
	Digits         int
	ToleranceSteps int
}

// Validate checks the policy is usable.
func (p ChannelPolicy) Validate() error {
	if p.StepSeconds <= 0 {
		return fmt.Errorf("step_seconds must be positive, got %d", p.StepSeconds)
	}
	if p.Digits < 4 || p.Digits > 10 {
		return fmt.Errorf("digits must be within 4..10, got %d", p.Digits)
	}
	if p.ToleranceSteps < 0 {
		return fmt.Errorf("tolerance_steps must not be negative, got %d", p.ToleranceSteps)
	}
	return nil
}
