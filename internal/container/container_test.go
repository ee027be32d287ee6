package container

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-accounts/config"
	"github.com/oksasatya/go-user-accounts/internal/infrastructure/memory"
	"github.com/oksasatya/go-user-accounts/pkg/mailer"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestNew_MemoryStoreWithoutOptionalBackends(t *testing.T) {
	cfg := &config.Config{
		StoreDriver:     "memory",
		RedisAddr:       "127.0.0.1:0",
		TokenSecret:     "secret",
		TokenTTL:        0,
		BcryptCost:      4,
		FrontBaseURL:    "http://front.test",
		AppName:         "Accounts",
		MailSendEnabled: false,
	}

	c, err := New(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &memory.UserRepository{}, c.Users)
	assert.IsType(t, &mailer.LogMailer{}, c.Mailer)
	assert.Nil(t, c.Pool)
	assert.Nil(t, c.Service.Index)
	assert.Nil(t, c.Service.Storage)
	assert.Equal(t, 4, c.Service.HashCost)
	assert.Equal(t, "http://front.test", c.Service.FrontBaseURL)
	assert.Contains(t, c.Checks, "redis")
	assert.NotContains(t, c.Checks, "postgres")
}

func TestNew_RejectsUnknownDrivers(t *testing.T) {
	_, err := New(context.Background(), &config.Config{StoreDriver: "sqlite"}, quietLogger())
	assert.ErrorContains(t, err, "STORE_DRIVER")

	_, err = New(context.Background(), &config.Config{
		StoreDriver:     "memory",
		MailSendEnabled: true,
		MailTransport:   "pigeon",
	}, quietLogger())
	assert.ErrorContains(t, err, "MAIL_TRANSPORT")
}

func TestNew_DirectMailRequiresMailgun(t *testing.T) {
	_, err := New(context.Background(), &config.Config{
		StoreDriver:     "memory",
		MailSendEnabled: true,
		MailTransport:   "direct",
	}, quietLogger())
	assert.ErrorContains(t, err, "mailgun")
}

func TestNew_RequiresTokenSecretOutsideDevelopment(t *testing.T) {
	for _, secret := range []string{"", config.DefaultTokenSecret} {
		_, err := New(context.Background(), &config.Config{
			Env:         "production",
			StoreDriver: "memory",
			TokenSecret: secret,
		}, quietLogger())
		assert.ErrorContains(t, err, "TOKEN_SECRET", "secret %q", secret)
	}

	c, err := New(context.Background(), &config.Config{
		Env:         "development",
		StoreDriver: "memory",
		RedisAddr:   "127.0.0.1:0",
		TokenSecret: config.DefaultTokenSecret,
	}, quietLogger())
	require.NoError(t, err)
	c.Close()
}
