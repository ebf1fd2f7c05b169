package postgres

import (
	"context"
	"errors"
	"time"

	"chat-relay/internal/domain"
	"chat-relay/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Compile-time check to ensure TranscriptRepository implements TranscriptArchive interface
var _ output.TranscriptArchive = (*TranscriptRepository)(nil)

// ConversationTurn struct - Archived turn row
type ConversationTurn struct {
	ID        *uuid.UUID `gorm:"type:uuid;primary_key;"`
	SessionID string     `gorm:"type:varchar(64);not null;index:idx_conversation_turns_session,priority:1"`
	UserEmail *string    `gorm:"type:varchar(254);index"`
	Position  int        `gorm:"not null;index:idx_conversation_turns_session,priority:2"`
	Role      string     `gorm:"type:varchar(16);not null;"`
	Content   string     `gorm:"type:text;not null;"`
	CreatedAt time.Time  `gorm:"type:timestamp;not null;"`
}

// TableName func
func (t *ConversationTurn) TableName() string {
	return "conversation_turns"
}

// BeforeCreate hook - generates UUID before creating
func (t *ConversationTurn) BeforeCreate(tx *gorm.DB) (err error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}
	t.ID = &id
	return nil
}

// TranscriptRepository struct - Secondary/Driven adapter archiving turns to PostgreSQL
type TranscriptRepository struct {
	dbGorm *gorm.DB
}

// NewTranscriptRepository func - Creates new PostgreSQL transcript archive and migrates its table
func NewTranscriptRepository(dbGorm *gorm.DB) (*TranscriptRepository, error) {
	if dbGorm == nil {
		return nil, errors.New("transcript archive requires a database connection")
	}

	logrus.Info("Migrate database ...")
	if err := dbGorm.AutoMigrate(&ConversationTurn{}); err != nil {
		return nil, err
	}

	return &TranscriptRepository{
		dbGorm: dbGorm,
	}, nil
}

// ArchiveTurn func - Inserts one completed turn
func (p *TranscriptRepository) ArchiveTurn(ctx context.Context, turn domain.ArchivedTurn) error {
	row := toConversationTurn(turn)
	if err := p.dbGorm.WithContext(ctx).Create(&row).Error; err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// Ping func - Checks the database connection
func (p *TranscriptRepository) Ping(ctx context.Context) error {
	sqlDB, err := p.dbGorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func toConversationTurn(turn domain.ArchivedTurn) ConversationTurn {
	createdAt := turn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return ConversationTurn{
		SessionID: turn.SessionID,
		UserEmail: turn.UserEmail,
		Position:  turn.Position,
		Role:      string(turn.Role),
		Content:   turn.Content,
		CreatedAt: createdAt.UTC(),
	}
}
