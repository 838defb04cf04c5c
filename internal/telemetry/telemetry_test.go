package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/org-admin-api/internal/config"
)

func TestParseHeaders(t *testing.T) {
	assert.Empty(t, parseHeaders(""))
	assert.Equal(t,
		map[string]string{"Authorization": "Bearer abc", "x-team": "admin=1"},
		parseHeaders("Authorization = Bearer abc,x-team=admin=1,broken"),
	)
}

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	tel, err := Setup(context.Background(), config.OTelConfig{ServiceName: "org-admin-api"})
	require.NoError(t, err)
	assert.Nil(t, tel)
	assert.NoError(t, tel.Shutdown(context.Background()))
}
