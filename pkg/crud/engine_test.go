//go:build integration

package crud_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediamarket-ai/chat-engine/pkg/apperrors"
	"github.com/mediamarket-ai/chat-engine/pkg/crud"
	"github.com/mediamarket-ai/chat-engine/pkg/database"
	"github.com/mediamarket-ai/chat-engine/pkg/models"
	"github.com/mediamarket-ai/chat-engine/pkg/testhelpers"
)

type engines struct {
	db       *database.DB
	tenants  *crud.Engine[models.Tenant, models.TenantCreate, models.TenantUpdate]
	users    *crud.Engine[models.User, models.UserCreate, models.UserUpdate]
	sessions *crud.Engine[models.ChatSession, models.ChatSessionCreate, models.ChatSessionUpdate]
	logs     *crud.Engine[models.ChatLog, models.ChatLogCreate, models.ChatLogUpdate]
}

func newEngines(t *testing.T) *engines {
	t.Helper()
	db := testhelpers.GetTestDB(t).DB
	return &engines{
		db:       db,
		tenants:  crud.NewEngine[models.Tenant, models.TenantCreate, models.TenantUpdate](db, models.TenantBinding(), 0),
		users:    crud.NewEngine[models.User, models.UserCreate, models.UserUpdate](db, models.UserBinding(), 0),
		sessions: crud.NewEngine[models.ChatSession, models.ChatSessionCreate, models.ChatSessionUpdate](db, models.ChatSessionBinding(), 0),
		logs:     crud.NewEngine[models.ChatLog, models.ChatLogCreate, models.ChatLogUpdate](db, models.ChatLogBinding(), 0),
	}
}

// newTenant creates one tenant with a unique directory tenant id.
func newTenant(t *testing.T, e *engines) models.Tenant {
	t.Helper()
	created, err := e.tenants.Create(context.Background(), []models.TenantCreate{{
		CompanyName:   "Test Co " + uuid.NewString()[:8],
		EntraTenantID: uuid.NewString(),
	}}, false)
	require.NoError(t, err)
	require.Len(t, created, 1)
	return created[0]
}

func newUser(t *testing.T, e *engines, tenantID uuid.UUID) models.User {
	t.Helper()
	created, err := e.users.Create(context.Background(), []models.UserCreate{{
		EntraID:  uuid.NewString(),
		TenantID: tenantID,
		Email:    fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
	}}, false)
	require.NoError(t, err)
	require.Len(t, created, 1)
	return created[0]
}

func TestCreateGetRoundTrip(t *testing.T) {
	e := newEngines(t)
	ctx := context.Background()

	tenant := newTenant(t, e)
	assert.NotEqual(t, uuid.Nil, tenant.ID)
	assert.NotNil(t, tenant.Settings)

	got, err := e.tenants.Get(ctx, map[string]any{"id": tenant.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tenant, got[0])

	// Equality filters on non-id columns resolve the same row.
	got, err = e.tenants.Get(ctx, map[string]any{"entra_tenant_id": tenant.EntraTenantID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tenant.ID, got[0].ID)
}

func TestNotFoundSymmetry(t *testing.T) {
	e := newEngines(t)
	ctx := context.Background()
	missing := uuid.New()

	_, err := e.tenants.Get(ctx, map[string]any{"id": missing})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = e.tenants.Update(ctx, missing, models.TenantUpdate{
		CompanyName:   "Ghost Co",
		EntraTenantID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = e.tenants.Delete(ctx, map[string]any{"id": missing}, 0, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetAllEmptyIsNotAnError(t *testing.T) {
	e := newEngines(t)
	ctx := context.Background()

	// Empty the table inside a transaction the engine joins, then roll the
	// whole thing back so other tests keep their rows.
	tx, err := e.db.Pool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "DELETE FROM chat_logs")
	require.NoError(t, err)

	txCtx := database.WithTxContext(ctx, tx)
	records, err := e.logs.GetAll(txCtx, nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	count, err := e.logs.CountAll(txCtx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIdempotentReads(t *testing.T) {
	e := newEngines(t)
	ctx := context.Background()

	tenant := newTenant(t, e)
	filters := map[string]any{"id": tenant.ID}

	first, err := e.tenants.Get(ctx, filters)
	require.NoError(t, err)
	second, err := e.tenants.Get(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBulkCreateAtomicOnUniqueViolation(t *testing.T) {
	e := newEngines(t)
	ctx := context.Background()

	duplicate := uuid.NewString()
	inputs := []models.TenantCreate{
		{CompanyName: "First", EntraTenantID: uuid.NewString()},
		{CompanyName: "Second", EntraTenantID: duplicate},
		{CompanyName: "Third", EntraTenantID: duplicate},
	}

	_, err := e.tenants.Create(ctx, inputs, false)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	// All-or-nothing: the non-conflicting rows must not have been inserted.
	_, err = e.tenants.Get(ctx, map[string]any{"entra_tenant_id": inputs[0].EntraTenantID})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateReturnNothing(t *testing.T) {
	e := newEngines(t)
	ctx := context.Background()

	tenant := newTenant(t, e)
	user := newUser(t, e, tenant.ID)
	sessions, err := e.sessions.Create(ctx, []models.ChatSessionCreate{{
		TenantID: tenant.ID,
		UserID:   user.ID,
	}}, false)
	require.NoError(t, err)
	session := sessions[0]

	inputs := make([]models.ChatLogCreate, 5)
	for i := range inputs {
		inputs[i] = models.ChatLogCreate{
			ChatSessionID: session.ID,
			Prompt:        fmt.Sprintf("prompt %d", i),
			ResponseText:  fmt.Sprintf("response %d", i),
		}
	}

	records, err := e.logs.Create(ctx, inputs, true)
	require.NoError(t, err)
	assert.Nil(t, records)

	stored, err := e.logs.Get(ctx, map[string]any{"chat_session_id": session.ID})
	require.NoError(t, err)
	assert.Len(t, stored, 5)
}

func TestDeleteCap(t *testing.T) {
	e := newEngines(t)
	ctx := context.Background()

	tenant := newTenant(t, e)
	user := newUser(t, e, tenant.ID)
	sessions, err := e.sessions.Create(ctx, []models.ChatSessionCreate{{
		TenantID: tenant.ID,
		UserID:   user.ID,
	}}, false)
	require.NoError(t, err)
	session := sessions[0]

	inputs := make([]models.ChatLogCreate, crud.DefaultMaxDeleteLimit+1)
	for i := range inputs {
		inputs[i] = models.ChatLogCreate{
			ChatSessionID: session.ID,
			Prompt:        fmt.Sprintf("prompt %d", i),
			ResponseText:  "response",
		}
	}
	_, err = e.logs.Create(ctx, inputs, true)
	require.NoError(t, err)

	filters := map[string]any{"chat_session_id": session.ID}

	// One row over the cap: refused, nothing deleted.
	_, err = e.logs.Delete(ctx, filters, 0, nil)
	assert.ErrorIs(t, err, apperrors.ErrTooManyItems)

	remaining, err := e.logs.Get(ctx, filters)
	require.NoError(t, err)
	assert.Len(t, remaining, crud.DefaultMaxDeleteLimit+1)

	// A raised cap deletes the whole set and returns its snapshot, here
	// ordered for determinism.
	snapshot, err := e.logs.Delete(ctx, filters, crud.DefaultMaxDeleteLimit+1, &crud.FilterParams{
		SortColumns: []string{"prompt"},
	})
	require.NoError(t, err)
	assert.Len(t, snapshot, crud.DefaultMaxDeleteLimit+1)

	_, err = e.logs.Get(ctx, filters)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateReturnsPostUpdateState(t *testing.T) {
	e := newEngines(t)
	ctx := context.Background()

	tenant := newTenant(t, e)
	user := newUser(t, e, tenant.ID)
	require.Nil(t, user.UpdatedAt)

	updated, err := e.users.Update(ctx, user.ID, models.UserUpdate{
		EntraID:  user.EntraID,
		TenantID: user.TenantID,
		Email:    "renamed@example.com",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed@example.com", updated.Email)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	// Trigger-set column is reflected without a second read.
	assert.NotNil(t, updated.UpdatedAt)
}

func TestSortingAndPaging(t *testing.T) {
	e := newEngines(t)
	ctx := context.Background()

	tenant := newTenant(t, e)
	user := newUser(t, e, tenant.ID)
	sessions, err := e.sessions.Create(ctx, []models.ChatSessionCreate{{
		TenantID: tenant.ID,
		UserID:   user.ID,
	}}, false)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := e.logs.Create(ctx, []models.ChatLogCreate{{
			ChatSessionID: sessions[0].ID,
			Prompt:        fmt.Sprintf("%c", 'c'-i), // c, b, a
			ResponseText:  "response",
		}}, true)
		require.NoError(t, err)
	}

	limit := 2
	records, err := e.logs.GetAll(ctx, &crud.FilterParams{
		SortColumns: []string{"prompt"},
		SortOrders:  []string{"asc"},
		Limit:       &limit,
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.LessOrEqual(t, records[0].Prompt, records[1].Prompt)

	// Unknown sort column is rejected before any SQL runs.
	_, err = e.logs.GetAll(ctx, &crud.FilterParams{SortColumns: []string{"nope"}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestSensitiveTableRedactsFilterValues(t *testing.T) {
	e := newEngines(t)
	ctx := context.Background()

	secret := "does-not-exist@example.com"
	_, err := e.users.Get(ctx, map[string]any{"email": secret})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NotContains(t, err.Error(), secret)
	assert.Contains(t, err.Error(), "hidden_value")
}

func TestChainScenario(t *testing.T) {
	e := newEngines(t)
	ctx := context.Background()

	tenant := newTenant(t, e)
	user := newUser(t, e, tenant.ID)

	sessions, err := e.sessions.Create(ctx, []models.ChatSessionCreate{{
		TenantID: tenant.ID,
		UserID:   user.ID,
	}}, false)
	require.NoError(t, err)
	session := sessions[0]
	assert.False(t, session.CreatedAt.IsZero())

	logs, err := e.logs.Create(ctx, []models.ChatLogCreate{{
		ChatSessionID: session.ID,
		Prompt:        "hello",
		ResponseText:  "hi there",
	}}, false)
	require.NoError(t, err)
	logRecord := logs[0]

	// Fetch-one through each link of the chain.
	gotUsers, err := e.users.Get(ctx, map[string]any{"tenant_id": tenant.ID, "entra_id": user.EntraID})
	require.NoError(t, err)
	require.Len(t, gotUsers, 1)

	gotSessions, err := e.sessions.Get(ctx, map[string]any{"user_id": user.ID})
	require.NoError(t, err)
	require.Len(t, gotSessions, 1)

	gotLogs, err := e.logs.Get(ctx, map[string]any{"id": logRecord.ID})
	require.NoError(t, err)
	assert.Equal(t, "hello", gotLogs[0].Prompt)

	// Deleting the tenant cascades down the whole chain.
	_, err = e.tenants.Delete(ctx, map[string]any{"id": tenant.ID}, 0, nil)
	require.NoError(t, err)

	_, err = e.users.Get(ctx, map[string]any{"id": user.ID})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = e.sessions.Get(ctx, map[string]any{"id": session.ID})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = e.logs.Get(ctx, map[string]any{"id": logRecord.ID})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEngineJoinsOpenTransaction(t *testing.T) {
	e := newEngines(t)
	ctx := context.Background()

	tx, err := e.db.Pool.Begin(ctx)
	require.NoError(t, err)

	txCtx := database.WithTxContext(ctx, tx)
	created, err := e.tenants.Create(txCtx, []models.TenantCreate{{
		CompanyName:   "Rollback Co",
		EntraTenantID: uuid.NewString(),
	}}, false)
	require.NoError(t, err)

	// Visible inside the transaction, invisible outside it.
	_, err = e.tenants.Get(txCtx, map[string]any{"id": created[0].ID})
	require.NoError(t, err)
	_, err = e.tenants.Get(ctx, map[string]any{"id": created[0].ID})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, tx.Rollback(ctx))

	_, err = e.tenants.Get(ctx, map[string]any{"id": created[0].ID})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
