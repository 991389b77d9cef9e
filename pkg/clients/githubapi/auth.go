package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// getToken returns the personal access token, or an installation token of the github app installed for owner
func (c *client) getToken(ctx context.Context, owner string) (*oauth2.Token, error) {
	tokenSource := c.getTokenSource(owner)

	token, err := tokenSource.Token()
	if err != nil {
		return nil, errors.Wrapf(err, "Retrieving github token for owner %v failed", owner)
	}

	return token, nil
}

func (c *client) getTokenSource(owner string) oauth2.TokenSource {
	c.tokenSourcesMutex.Lock()
	defer c.tokenSourcesMutex.Unlock()

	key := owner
	if !c.config.UsesApp() {
		key = ""
	}

	if tokenSource, ok := c.tokenSources[key]; ok {
		return tokenSource
	}

	var tokenSource oauth2.TokenSource
	if c.config.UsesApp() {
		// reuse the installation token until it's about to expire
		tokenSource = oauth2.ReuseTokenSource(nil, &installationTokenSource{client: c, owner: owner})
	} else {
		tokenSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.config.Token, TokenType: "token"})
	}
	c.tokenSources[key] = tokenSource

	return tokenSource
}

type installationTokenSource struct {
	client *client
	owner  string
}

func (s *installationTokenSource) Token() (*oauth2.Token, error) {
	// token sources have no context; the refresh must not be cancelled along with the request that triggered it
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	installationID, err := s.client.getInstallationID(ctx, s.owner)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.client.getInstallationToken(ctx, installationID)
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: accessToken.Token,
		TokenType:   "token",
		Expiry:      accessToken.ExpiresAt,
	}, nil
}

// getGithubAppToken returns a Github app token with which to retrieve an installation token
func (c *client) getGithubAppToken() (githubAppToken string, err error) {

	// https://docs.github.com/en/apps/creating-github-apps/authenticating-with-a-github-app/generating-a-json-web-token-jwt-for-a-github-app

	pemFileByteArray, err := os.ReadFile(c.config.PrivateKeyPath)
	if err != nil {
		return
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(pemFileByteArray)
	if err != nil {
		return
	}

	epoch := time.Now().Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		// issued at time, backdated for clock drift
		"iat": epoch - 60,
		// JWT expiration time (10 minute maximum)
		"exp": epoch + 500,
		// GitHub App's identifier
		"iss": c.config.AppID,
	})

	return token.SignedString(privateKey)
}

// getInstallationID returns the id for the installation of the Github app for the owner
func (c *client) getInstallationID(ctx context.Context, owner string) (installationID int, err error) {

	githubAppToken, err := c.getGithubAppToken()
	if err != nil {
		return
	}

	body, err := c.callGithubAPI(ctx, http.MethodGet, fmt.Sprintf("%v/app/installations", c.config.APIURL), []int{http.StatusOK}, nil, "Bearer", githubAppToken)
	if err != nil {
		return
	}

	var installations []installationResponse
	if err = json.Unmarshal(body, &installations); err != nil {
		return
	}

	for _, installation := range installations {
		if installation.Account.Login == owner {
			return installation.ID, nil
		}
	}

	return installationID, errors.Wrapf(ErrUnauthorized, "Github installation of app %v with account login %v can't be found", c.config.AppID, owner)
}

// getInstallationToken returns an access token for an installation of a Github app
func (c *client) getInstallationToken(ctx context.Context, installationID int) (accessToken AccessToken, err error) {

	githubAppToken, err := c.getGithubAppToken()
	if err != nil {
		return
	}

	body, err := c.callGithubAPI(ctx, http.MethodPost, fmt.Sprintf("%v/app/installations/%v/access_tokens", c.config.APIURL, installationID), []int{http.StatusCreated}, nil, "Bearer", githubAppToken)
	if err != nil {
		return
	}

	err = json.Unmarshal(body, &accessToken)

	return
}
