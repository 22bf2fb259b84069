package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediamarket-ai/chat-engine/pkg/models"
)

func TestDecodeCreateBodySingleObject(t *testing.T) {
	body := []byte(`{"company_name": "Acme", "entra_tenant_id": "tid-1"}`)

	inputs, wasList, err := decodeCreateBody[models.TenantCreate](body)
	require.NoError(t, err)
	assert.False(t, wasList)
	require.Len(t, inputs, 1)
	assert.Equal(t, "Acme", inputs[0].CompanyName)
}

func TestDecodeCreateBodyArray(t *testing.T) {
	body := []byte(`  [
		{"company_name": "Acme", "entra_tenant_id": "tid-1"},
		{"company_name": "Globex", "entra_tenant_id": "tid-2"}
	]`)

	inputs, wasList, err := decodeCreateBody[models.TenantCreate](body)
	require.NoError(t, err)
	assert.True(t, wasList)
	require.Len(t, inputs, 2)
	assert.Equal(t, "Globex", inputs[1].CompanyName)
}

func TestDecodeCreateBodyEmptyArray(t *testing.T) {
	inputs, wasList, err := decodeCreateBody[models.TenantCreate]([]byte(`[]`))
	require.NoError(t, err)
	assert.True(t, wasList)
	assert.Empty(t, inputs)
}

func TestDecodeCreateBodyMalformed(t *testing.T) {
	for _, body := range []string{``, `{`, `[{]`, `"just a string"`} {
		_, _, err := decodeCreateBody[models.TenantCreate]([]byte(body))
		assert.Error(t, err, "body=%q", body)
	}
}
