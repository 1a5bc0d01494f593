package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gdugdh24/cofounders-backend/internal/config"
	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"golang.org/x/oauth2"
)

var scopes = []string{"openid", "profile", "email"}

// Client talks to LinkedIn's OpenID Connect endpoints.
type Client struct {
	oauth       *oauth2.Config
	userInfoURL string
}

func NewClient(cfg config.LinkedInConfig) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		userInfoURL: cfg.UserInfoURL,
	}
}

// AuthCodeURL builds the authorize URL carrying state and the PKCE challenge
// for verifier.
func (c *Client) AuthCodeURL(state, verifier string) string {
	return c.oauth.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

type userInfo struct {
	Sub        string `json:"sub"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
}

// Exchange trades an authorization code for tokens and returns the
// identity from the userinfo endpoint.
func (c *Client) Exchange(ctx context.Context, code, verifier string) (*domain.Identity, error) {
	token, err := c.oauth.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("userinfo returned status %d: %s", resp.StatusCode, body)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("userinfo has no subject")
	}

	return &domain.Identity{
		ID:         domain.IdentityID(domain.ProviderLinkedIn, info.Sub),
		Provider:   domain.ProviderLinkedIn,
		Subject:    info.Sub,
		GivenName:  info.GivenName,
		FamilyName: info.FamilyName,
		Email:      info.Email,
		Picture:    info.Picture,
	}, nil
}
