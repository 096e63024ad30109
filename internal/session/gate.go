package session

import (
	"context"
	goerrors "errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	errors "github.com/frahmantamala/earned-wage-access/internal"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/employee"
	"github.com/frahmantamala/earned-wage-access/internal/core/events"
)

type State int

const (
	StateAnonymous State = iota
	StateCodeVerified
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateCodeVerified:
		return "code_verified"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

type LedgerAPI interface {
	Get(id string) (employee.Record, error)
}

type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func ProfileOf(r employee.Record) Profile {
	return Profile{ID: r.ID, Name: r.Name, Phone: r.Phone}
}

// Challenge is a pending login waiting for its one-time code.
type Challenge struct {
	ID        string    `json:"challenge_id"`
	Employee  Profile   `json:"employee"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Session is an authenticated login.
type Session struct {
	ID        string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Employee  Profile   `json:"employee"`
}

type entry struct {
	state     State
	profile   Profile
	expiresAt time.Time
}

type Config struct {
	OneTimeCode  string
	ChallengeTTL time.Duration
	BcryptCost   int
	// Now defaults to time.Now.
	Now func() time.Time
}

// Gate runs the login state machine for every session:
// anonymous -> code verified -> authenticated -> anonymous.
type Gate struct {
	ledger    LedgerAPI
	tokens    TokenGenerator
	publisher events.Publisher
	logger    *slog.Logger

	codeHash     []byte
	challengeTTL time.Duration
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewGate(cfg Config, ledger LedgerAPI, tokens TokenGenerator, publisher events.Publisher, logger *slog.Logger) (*Gate, error) {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.OneTimeCode), cost)
	if err != nil {
		return nil, err
	}

	ttl := cfg.ChallengeTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Gate{
		ledger:       ledger,
		tokens:       tokens,
		publisher:    publisher,
		logger:       logger,
		codeHash:     hash,
		challengeTTL: ttl,
		now:          now,
		sessions:     make(map[string]*entry),
	}, nil
}

// Identify starts a login for the employee code. Codes are matched
// case-insensitively.
func (g *Gate) Identify(code string) (Challenge, error) {
	code = errors.NormalizeEmployeeID(code)
	if code == "" {
		return Challenge{}, errors.NewValidationFieldError("employee_code", "employee_code is required", errors.ErrCodeValidationFailed)
	}

	record, err := g.ledger.Get(code)
	if err != nil {
		if goerrors.Is(err, errors.ErrEmployeeNotFound) {
			g.logger.Info("unknown employee code", "employee_code", code)
			return Challenge{}, errors.ErrUnknownEmployeeCode
		}
		return Challenge{}, err
	}

	now := g.now()
	challenge := Challenge{
		ID:        uuid.NewString(),
		Employee:  ProfileOf(record),
		ExpiresAt: now.Add(g.challengeTTL),
	}

	g.mu.Lock()
	g.pruneLocked(now)
	g.sessions[challenge.ID] = &entry{
		state:     StateAnonymous,
		profile:   challenge.Employee,
		expiresAt: challenge.ExpiresAt,
	}
	g.mu.Unlock()

	g.logger.Info("login challenge issued", "employee_id", record.ID)
	return challenge, nil
}

// VerifyCode checks the one-time code for a pending challenge. A wrong code
// leaves the challenge open for another attempt.
func (g *Gate) VerifyCode(challengeID, code string) error {
	g.mu.Lock()
	e, ok := g.sessions[challengeID]
	if !ok || e.state != StateAnonymous || g.now().After(e.expiresAt) {
		g.mu.Unlock()
		return errors.ErrInvalidCode
	}
	employeeID := e.profile.ID
	g.mu.Unlock()

	// Compared outside the lock so Resolve is never held up by bcrypt.
	if err := bcrypt.CompareHashAndPassword(g.codeHash, []byte(strings.TrimSpace(code))); err != nil {
		g.logger.Warn("invalid one-time code", "employee_id", employeeID)
		return errors.ErrInvalidCode
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// The challenge may have expired or been logged out during the compare.
	e, ok = g.sessions[challengeID]
	if !ok || e.state != StateAnonymous || g.now().After(e.expiresAt) {
		return errors.ErrInvalidCode
	}
	e.state = StateCodeVerified
	return nil
}

// Authenticate turns a verified challenge into a session and issues its
// token. The identity is captured now and never refreshed.
func (g *Gate) Authenticate(ctx context.Context, challengeID string) (Session, error) {
	g.mu.Lock()
	e, ok := g.sessions[challengeID]
	if !ok || e.state != StateCodeVerified || g.now().After(e.expiresAt) {
		g.mu.Unlock()
		return Session{}, errors.ErrInvalidCode
	}

	token, expiresAt, err := g.tokens.Generate(challengeID, e.profile.ID)
	if err != nil {
		g.mu.Unlock()
		return Session{}, errors.NewInternalError("failed to issue session token", err)
	}

	e.state = StateAuthenticated
	e.expiresAt = expiresAt
	profile := e.profile
	g.mu.Unlock()

	g.logger.Info("session authenticated", "employee_id", profile.ID, "session_id", challengeID)

	if g.publisher != nil {
		if err := g.publisher.Publish(ctx, events.NewSessionAuthenticatedEvent(challengeID, profile.ID)); err != nil {
			g.logger.Error("failed to publish session event", "session_id", challengeID, "error", err)
		}
	}

	return Session{ID: challengeID, Token: token, ExpiresAt: expiresAt, Employee: profile}, nil
}

// Resolve maps a token back to the identity captured at login.
func (g *Gate) Resolve(token string) (*errors.Identity, error) {
	claims, err := g.tokens.Validate(token)
	if err != nil {
		return nil, errors.ErrInvalidToken.WithCause(err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.sessions[claims.SessionID]
	if !ok || e.state != StateAuthenticated || g.now().After(e.expiresAt) {
		return nil, errors.ErrInvalidToken
	}

	return &errors.Identity{
		SessionID:  claims.SessionID,
		EmployeeID: e.profile.ID,
		Name:       e.profile.Name,
		Phone:      e.profile.Phone,
	}, nil
}

// Logout ends the session. Unknown sessions are ignored.
func (g *Gate) Logout(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if e, ok := g.sessions[sessionID]; ok {
		g.logger.Info("session ended", "employee_id", e.profile.ID, "session_id", sessionID)
		delete(g.sessions, sessionID)
	}
}

// State reports where a session is in the login flow.
func (g *Gate) State(sessionID string) State {
	g.mu.Lock()
	defer g.mu.Unlock()

	if e, ok := g.sessions[sessionID]; ok && !g.now().After(e.expiresAt) {
		return e.state
	}
	return StateAnonymous
}

func (g *Gate) pruneLocked(now time.Time) {
	for id, e := range g.sessions {
		if now.After(e.expiresAt) {
			delete(g.sessions, id)
		}
	}
}
