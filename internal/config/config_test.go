package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsUnknownStore(t *testing.T) {
	c := NewConfig()
	c.StoreKind = "sqlite"
	require.Error(t, c.Validate())
}

func TestValidateRequiresDSNForPostgres(t *testing.T) {
	c := NewConfig()
	c.StoreKind = "postgres"
	require.Error(t, c.Validate())
	c.PostgresDSN = "postgres://localhost/deckhand"
	require.NoError(t, c.Validate())
}

func TestRegisterFlagsSetsDefaults(t *testing.T) {
	c := NewConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.RegisterFlags(fs)

	flag := fs.Lookup("store")
	require.NotNil(t, flag)
	assert.Equal(t, "local", flag.DefValue)

	revisionFlag := fs.Lookup("revision-id")
	require.NotNil(t, revisionFlag)
	assert.Equal(t, "1", revisionFlag.DefValue)

	localeFlag := fs.Lookup("locale")
	require.NotNil(t, localeFlag)
	assert.Equal(t, "en", localeFlag.DefValue)
}

func TestValidateRejectsUnknownLocale(t *testing.T) {
	c := NewConfig()
	c.Locale = "de"
	require.Error(t, c.Validate())
}

func TestUsesPostgres(t *testing.T) {
	c := NewConfig()
	assert.False(t, c.UsesPostgres())
	c.StoreKind = "postgres"
	assert.True(t, c.UsesPostgres())
}
