package oauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
)

func TestGoogleOAuth_AuthURL(t *testing.T) {
	g := NewGoogleOAuth("gid", "gsecret", "http://localhost/api/v1/auth/oauth/google/callback")

	url := g.AuthURL("s1")

	assert.Contains(t, url, "accounts.google.com")
	assert.Contains(t, url, "client_id=gid")
	assert.Contains(t, url, "state=s1")
	assert.Contains(t, url, "scope=openid+email+profile")
}

func TestGoogleOAuth_FetchProfile(t *testing.T) {
	server := newProviderServer(t, map[string]string{
		"/userinfo": `{"sub":"1","email":"g@example.com","email_verified":true,"name":"G User","picture":"https://p/g.png"}`,
	})
	defer server.Close()

	g := NewGoogleOAuth("id", "secret", "http://localhost/cb")
	g.config.Endpoint = testEndpoint(server)
	g.userInfoURL = server.URL + "/userinfo"

	profile, err := FetchProfile(context.Background(), g, "code")
	require.NoError(t, err)
	assert.Equal(t, &Profile{
		Email:         "g@example.com",
		Name:          "G User",
		AvatarURL:     "https://p/g.png",
		EmailVerified: true,
	}, profile)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(&config.OAuthConfig{
		Google: config.OAuthProviderConfig{ClientID: "gid"},
	})

	p, err := r.Get(ProviderGoogle)
	require.NoError(t, err)
	assert.Equal(t, ProviderGoogle, p.Name())

	_, err = r.Get(ProviderGithub)
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = r.Get("myspace")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
