package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/staffhub-hr/timeoff-backend-go/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// ErrEmailNotVerified rejects Google accounts whose address Google has not
// confirmed; linking such an account would let anyone claim an email.
var ErrEmailNotVerified = errors.New("google account email is not verified")

// GoogleService runs the authorization-code flow against Google and resolves
// the authenticated account.
type GoogleService interface {
	// GenerateState returns a fresh random state for one login attempt.
	GenerateState() string
	// RedirectURL builds the consent page URL carrying the state.
	RedirectURL(state string) string
	// Exchange trades the callback code for an access token.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	// FetchUser loads the account behind the token and checks that its
	// email is verified.
	FetchUser(ctx context.Context, token *oauth2.Token) (GoogleAccount, error)
}

// GoogleAccount is the subset of the userinfo payload the login flow needs.
type GoogleAccount struct {
	GoogleID      string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	VerifiedEmail bool   `json:"verified_email"`
}

type googleService struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewGoogleService(cfg config.OAuth2GoogleConfig) GoogleService {
	return &googleService{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		userInfoURL: userInfoEndpoint,
	}
}

func (g *googleService) GenerateState() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func (g *googleService) RedirectURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (g *googleService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}

func (g *googleService) FetchUser(ctx context.Context, token *oauth2.Token) (GoogleAccount, error) {
	client := g.config.Client(ctx, token)

	resp, err := client.Get(g.userInfoURL)
	if err != nil {
		return GoogleAccount{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return GoogleAccount{}, fmt.Errorf("fetch userinfo: unexpected status %d", resp.StatusCode)
	}

	var account GoogleAccount
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return GoogleAccount{}, fmt.Errorf("decode userinfo: %w", err)
	}

	if !account.VerifiedEmail {
		return GoogleAccount{}, ErrEmailNotVerified
	}
	return account, nil
}
