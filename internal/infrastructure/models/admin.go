package models

import "time"

type AdminRole struct {
	GuildID   string `gorm:"type:varchar(32);primaryKey"`
	RoleID    string `gorm:"type:varchar(32);primaryKey"`
	RoleName  string `gorm:"type:varchar(120);not null"`
	AddedBy   string `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time
}

func (AdminRole) TableName() string {
	return "admin_roles"
}

type GuildOwner struct {
	GuildID   string `gorm:"type:varchar(32);primaryKey"`
	OwnerID   string `gorm:"type:varchar(32);not null"`
	UpdatedAt time.Time
}

func (GuildOwner) TableName() string {
	return "guild_owners"
}
