package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/chat"
	"github.com/BruksfildServices01/beauty-scheduler/internal/dto"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

type ChatGormRepository struct {
	db *gorm.DB
}

func NewChatGormRepository(db *gorm.DB) *ChatGormRepository {
	return &ChatGormRepository{db: db}
}

var _ domain.Repository = (*ChatGormRepository)(nil)

// ======================================================
// USERS
// ======================================================

func (r *ChatGormRepository) UserExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// ======================================================
// CHATS
// ======================================================

const listChatsSQL = `
SELECT c.*,
       CASE WHEN c.user1_id = @me THEN c.user2_id ELSE c.user1_id END AS other_user_id,
       CASE WHEN c.user1_id = @me THEN u2.name ELSE u1.name END AS other_user_name,
       CASE WHEN c.user1_id = @me THEN u2.username ELSE u1.username END AS other_user_username,
       (SELECT COUNT(*) FROM messages m
         WHERE m.chat_id = c.id AND m.sender_id <> @me AND m.is_read = false) AS unread_count
FROM chats c
LEFT JOIN users u1 ON c.user1_id = u1.id
LEFT JOIN users u2 ON c.user2_id = u2.id
WHERE c.user1_id = @me OR c.user2_id = @me
ORDER BY c.last_message_time DESC NULLS LAST, c.id DESC`

func listChatsQuery(tx *gorm.DB, userID uint) *gorm.DB {
	return tx.Raw(listChatsSQL, sql.Named("me", userID))
}

func (r *ChatGormRepository) ListChats(ctx context.Context, userID uint) ([]dto.ChatView, error) {
	views := []dto.ChatView{}
	if err := listChatsQuery(r.db.WithContext(ctx), userID).Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// OpenChat inserts the pair unless it exists and returns the stored row.
// Two concurrent opens of the same pair end on the same chat.
func (r *ChatGormRepository) OpenChat(ctx context.Context, user1ID, user2ID uint) (*models.Chat, error) {
	db := r.db.WithContext(ctx)

	c := models.Chat{User1ID: user1ID, User2ID: user2ID, Type: domain.TypeDirect}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
		DoNothing: true,
	}).Create(&c).Error; err != nil {
		return nil, err
	}
	if c.ID != 0 {
		return &c, nil
	}

	var existing models.Chat
	if err := db.Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *ChatGormRepository) GetChat(ctx context.Context, id uint) (*models.Chat, error) {
	var c models.Chat
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ChatGormRepository) DeleteChat(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Chat{}, id).Error
	})
}

// ======================================================
// MESSAGES
// ======================================================

func listMessagesQuery(tx *gorm.DB, chatID uint, page domain.Page) *gorm.DB {
	q := tx.
		Table("messages AS m").
		Select("m.*, u.name AS sender_name").
		Joins("LEFT JOIN users u ON m.sender_id = u.id").
		Where("m.chat_id = ?", chatID)

	if page.BeforeID != 0 {
		q = q.Where("m.id < ?", page.BeforeID)
	}
	return q.Order("m.created_at DESC, m.id DESC").Limit(page.Limit)
}

func (r *ChatGormRepository) ListMessages(ctx context.Context, chatID uint, page domain.Page) ([]dto.MessageView, error) {
	views := []dto.MessageView{}
	if err := listMessagesQuery(r.db.WithContext(ctx), chatID, page).Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *ChatGormRepository) AddMessage(ctx context.Context, msg *models.Message, preview string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Chat{}).
			Where("id = ?", msg.ChatID).
			Updates(map[string]any{
				"last_message":      preview,
				"last_message_time": msg.CreatedAt,
			}).Error
	})
}

func markReadQuery(tx *gorm.DB, chatID, readerID uint, at time.Time) *gorm.DB {
	return tx.Model(&models.Message{}).
		Where("chat_id = ? AND sender_id <> ? AND is_read = ?", chatID, readerID, false).
		Updates(map[string]any{"is_read": true, "read_at": at})
}

func (r *ChatGormRepository) MarkRead(ctx context.Context, chatID, readerID uint, at time.Time) (int64, error) {
	res := markReadQuery(r.db.WithContext(ctx), chatID, readerID, at)
	return res.RowsAffected, res.Error
}
