package user

import "time"

// User is carried over from the portal schema for a future auth layer.
// It is migrated but not referenced by any business operation.
type User struct {
	ID              string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Email           string    `gorm:"column:email;size:255;uniqueIndex:ux_users_email" json:"email"`
	FirstName       string    `gorm:"column:first_name;size:255" json:"firstName"`
	LastName        string    `gorm:"column:last_name;size:255" json:"lastName"`
	ProfileImageURL string    `gorm:"column:profile_image_url;size:1024" json:"profileImageUrl"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }
