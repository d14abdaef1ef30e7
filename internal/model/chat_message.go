package model

import "time"

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage rows are immutable once written.
type ChatMessage struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	TreeID    uint64    `gorm:"column:tree_id;not null;index"`
	UserID    uint64    `gorm:"column:user_id;not null;index"`
	Role      ChatRole  `gorm:"size:16;not null"`
	Content   string    `gorm:"type:text;not null"`
	AudioURL  *string   `gorm:"column:audio_url;size:512"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
