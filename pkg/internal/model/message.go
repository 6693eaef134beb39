package model

import "time"

// ContactMessage 访客留言，由前台写入，管理端只读和删除.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey"        json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Subject   *string   `gorm:"size:255"          json:"subject"`
	Message   string    `gorm:"type:text"         json:"message"`
	CreatedAt time.Time `gorm:"index"             json:"createdAt"`
}
