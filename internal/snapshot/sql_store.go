package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/coffee-storefront/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLClient is the subset of pkg/db used by SQLStore.
type SQLClient interface {
	DB() *gorm.DB
	Dialect() string
	Ping(ctx context.Context) error
}

// SQLStore keeps the snapshot as one row of storefront_snapshots per session.
type SQLStore struct {
	client     SQLClient
	sessionKey string
	now        func() time.Time
}

func NewSQLStore(client SQLClient, sessionKey string) *SQLStore {
	return &SQLStore{client: client, sessionKey: sessionKey, now: time.Now}
}

func (s *SQLStore) Load(ctx context.Context) (*Snapshot, error) {
	var row models.StorefrontSnapshot
	err := s.client.DB().WithContext(ctx).
		Where("session_key = ?", s.sessionKey).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	snap, err := Decode([]byte(row.Payload))
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *SQLStore) Save(ctx context.Context, snap Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	row := models.StorefrontSnapshot{
		SessionKey: s.sessionKey,
		Version:    snap.Version,
		Payload:    string(data),
		OrderCount: len(snap.Orders),
		UpdatedAt:  s.now().UTC(),
	}
	err = s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"version", "payload", "order_count", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *SQLStore) Name() string { return s.client.Dialect() }
