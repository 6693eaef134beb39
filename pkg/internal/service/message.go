package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeisme/goatdesk/pkg/internal/model"
)

// MessageService 访客留言，管理端只读与删除.
type MessageService struct {
	base
}

// NewMessageService 从 context 获取依赖实例.
func NewMessageService(c context.Context) *MessageService {
	return &MessageService{base: newBase(c)}
}

// List 按创建时间倒序返回全部留言.
func (s *MessageService) List(ctx context.Context) ([]model.ContactMessage, error) {
	var msgs []model.ContactMessage
	if err := s.dbClient.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return msgs, nil
}

// Get 获取单条留言.
func (s *MessageService) Get(ctx context.Context, id uint) (*model.ContactMessage, error) {
	var m model.ContactMessage
	if err := s.dbClient.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}

		return nil, fmt.Errorf("load message %d: %w", id, err)
	}

	return &m, nil
}

// Delete 删除留言.
func (s *MessageService) Delete(ctx context.Context, id uint) error {
	res := s.dbClient.WithContext(ctx).Delete(&model.ContactMessage{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete message %d: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}

	return nil
}
