package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
)

// fakeSession is an in-memory driven.SessionStore for tests.
type fakeSession struct {
	values  map[string][]byte
	getErr  error
	setErr  error
	gets    int
	sets    int
	clears  int
}

var _ driven.SessionStore = (*fakeSession)(nil)

func newFakeSession() *fakeSession {
	return &fakeSession{values: map[string][]byte{}}
}

func (s *fakeSession) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.gets++
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *fakeSession) Set(_ context.Context, key string, value []byte) error {
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *fakeSession) Clear(_ context.Context, key string) error {
	s.clears++
	delete(s.values, key)
	return nil
}

// mockConsent implements driven.ConsentBroker.
type mockConsent struct {
	grant       *domain.CredentialRecord
	grantErr    error
	consentErr  error
	grantCalls  int
	requestCalls int
}

var _ driven.ConsentBroker = (*mockConsent)(nil)

func (m *mockConsent) TryObtainGrant(_ context.Context, _ domain.AuthScheme) (*domain.CredentialRecord, error) {
	m.grantCalls++
	if m.grantErr != nil {
		return nil, m.grantErr
	}
	rec := m.grant
	m.grant = nil
	return rec, nil
}

func (m *mockConsent) RequestConsent(_ context.Context, _ domain.AuthScheme) error {
	m.requestCalls++
	return m.consentErr
}

// mockTokens implements driven.TokenRefresher.
type mockTokens struct {
	refreshed  *domain.CredentialRecord
	refreshErr error
	calls      int
	lastToken  string
}

var _ driven.TokenRefresher = (*mockTokens)(nil)

func (m *mockTokens) Refresh(_ context.Context, _ domain.AuthScheme, refreshToken string) (*domain.CredentialRecord, error) {
	m.calls++
	m.lastToken = refreshToken
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	return m.refreshed, nil
}

// mockCaller implements driven.Caller, replaying canned outcomes in order
// and recording every request.
type mockCaller struct {
	outcomes []domain.Outcome
	requests []driven.CallRequest
}

var _ driven.Caller = (*mockCaller)(nil)

func (m *mockCaller) Call(_ context.Context, _ driven.SessionStore, req driven.CallRequest) domain.Outcome {
	m.requests = append(m.requests, req)
	if len(m.outcomes) == 0 {
		return domain.Errorf("mockCaller: no outcome queued")
	}
	out := m.outcomes[0]
	m.outcomes = m.outcomes[1:]
	return out
}

var errUpstream = errors.New("upstream unavailable")
