package usecase

import (
	"context"
	"errors"
	"strings"
)

// UpstreamKind labels why a provider call failed. It is only used for
// logging; callers see a single upstream failure.
type UpstreamKind string

const (
	UpstreamAuth      UpstreamKind = "auth"
	UpstreamQuota     UpstreamKind = "quota"
	UpstreamTransient UpstreamKind = "transient"
	UpstreamUnknown   UpstreamKind = "unknown"
)

func ClassifyUpstream(err error) UpstreamKind {
	if err == nil {
		return UpstreamUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return UpstreamTransient
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "401", "403", "unauthenticated", "permission_denied", "api key"):
		return UpstreamAuth
	case containsAny(msg, "429", "resource_exhausted", "quota"):
		return UpstreamQuota
	case containsAny(msg, "500", "502", "503", "504", "overloaded", "unavailable", "deadline", "connection refused", "eof"):
		return UpstreamTransient
	}
	return UpstreamUnknown
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
