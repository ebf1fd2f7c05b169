package postgres

import (
	"testing"
	"time"

	"chat-relay/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		DSN: "host=localhost user=relay dbname=relay port=5432 sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestToConversationTurn(t *testing.T) {
	email := "a@b.co"
	at := time.Date(2026, 10, 19, 17, 0, 0, 0, time.FixedZone("ICT", 7*60*60))

	row := toConversationTurn(domain.ArchivedTurn{
		SessionID: "session-1",
		UserEmail: &email,
		Position:  3,
		Role:      domain.TurnRoleAssistant,
		Content:   "hi there",
		CreatedAt: at,
	})

	assert.Equal(t, "session-1", row.SessionID)
	assert.Equal(t, &email, row.UserEmail)
	assert.Equal(t, 3, row.Position)
	assert.Equal(t, "assistant", row.Role)
	assert.Equal(t, "hi there", row.Content)
	assert.Equal(t, time.UTC, row.CreatedAt.Location())
	assert.True(t, at.Equal(row.CreatedAt))
	assert.Nil(t, row.ID)
}

func TestToConversationTurn_DefaultsCreatedAt(t *testing.T) {
	row := toConversationTurn(domain.ArchivedTurn{SessionID: "s", Role: domain.TurnRoleUser})
	assert.False(t, row.CreatedAt.IsZero())
}

func TestArchiveInsertStatement(t *testing.T) {
	db := dryRunDB(t)

	row := toConversationTurn(domain.ArchivedTurn{
		SessionID: "session-1",
		Position:  0,
		Role:      domain.TurnRoleUser,
		Content:   "hello",
	})
	stmt := db.Create(&row).Statement

	require.NotNil(t, row.ID, "BeforeCreate should assign an id")
	assert.Contains(t, stmt.SQL.String(), `INSERT INTO "conversation_turns"`)
	assert.Contains(t, stmt.Vars, "hello")
}

func TestNewTranscriptRepository_RequiresDB(t *testing.T) {
	_, err := NewTranscriptRepository(nil)
	assert.Error(t, err)
}
