package repository

import (
	"context"
	"time"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/pkg/pg"
)

type NotificationLogEntity struct {
	ID         int64      `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	OrderID    string     `db:"order_id"    gorm:"column:order_id;not null;index"`
	Email      string     `db:"email"       gorm:"column:email;not null"`
	Status     string     `db:"status"      gorm:"column:status;not null"`
	State      string     `db:"state"       gorm:"column:state;not null"`
	ProviderID string     `db:"provider_id" gorm:"column:provider_id"`
	SentAt     *time.Time `db:"sent_at"     gorm:"column:sent_at"`
	CreatedAt  time.Time  `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (NotificationLogEntity) TableName() string {
	return "notification_logs"
}

func toNotificationLogEntity(l *model.NotificationLog) *NotificationLogEntity {
	if l == nil {
		return nil
	}
	return &NotificationLogEntity{
		ID:         l.ID,
		OrderID:    l.OrderID,
		Email:      l.Email,
		Status:     l.Status,
		State:      string(l.State),
		ProviderID: l.ProviderID,
		SentAt:     l.SentAt,
		CreatedAt:  l.CreatedAt,
	}
}

func toNotificationLogModel(e *NotificationLogEntity) *model.NotificationLog {
	if e == nil {
		return nil
	}
	return &model.NotificationLog{
		ID:         e.ID,
		OrderID:    e.OrderID,
		Email:      e.Email,
		Status:     e.Status,
		State:      model.NotificationState(e.State),
		ProviderID: e.ProviderID,
		SentAt:     e.SentAt,
		CreatedAt:  e.CreatedAt,
	}
}

type NotificationLogRepository struct {
	db *pg.DB
}

func NewNotificationLogRepository(db *pg.DB) *NotificationLogRepository {
	return &NotificationLogRepository{db: db}
}

func (r *NotificationLogRepository) Create(ctx context.Context, log *model.NotificationLog) (*model.NotificationLog, error) {
	entity := toNotificationLogEntity(log)
	entity.ID = 0
	if err := r.db.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toNotificationLogModel(entity), nil
}

func (r *NotificationLogRepository) ListByOrderID(ctx context.Context, orderID string) ([]*model.NotificationLog, error) {
	var entities []*NotificationLogEntity
	err := r.db.Read(ctx).WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC, id DESC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	models := make([]*model.NotificationLog, len(entities))
	for i, e := range entities {
		models[i] = toNotificationLogModel(e)
	}
	return models, nil
}
