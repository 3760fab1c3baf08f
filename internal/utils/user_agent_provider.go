package utils

//go:generate $MOCKGEN -source=user_agent_provider.go -destination=mocks/user_agent_provider_mock.go

// UserAgentProvider supplies the User-Agent string for outbound HTTP
// requests. It is an interface so that transports can swap agents without
// rebuilding the client, and so tests can observe what gets injected.
type UserAgentProvider interface {
	// GetUserAgent returns a User-Agent string.
	GetUserAgent() string
}

// SimpleUserAgentProvider returns the same User-Agent for every request.
type SimpleUserAgentProvider struct {
	userAgent string
}

// NewSimpleUserAgentProvider creates a provider pinned to userAgent.
func NewSimpleUserAgentProvider(userAgent string) UserAgentProvider {
	return &SimpleUserAgentProvider{userAgent: userAgent}
}

// GetUserAgent returns the configured User-Agent string.
func (p *SimpleUserAgentProvider) GetUserAgent() string {
	return p.userAgent
}
