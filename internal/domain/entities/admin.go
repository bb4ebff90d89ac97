package entities

import "time"

// AdminRole marks a guild role whose holders may run admin-gated commands.
type AdminRole struct {
	GuildID   string    `json:"guildId"`
	RoleID    string    `json:"roleId"`
	RoleName  string    `json:"roleName"`
	AddedBy   string    `json:"addedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// GuildOwner caches the owner of a guild, refreshed per the configured
// freshness policy.
type GuildOwner struct {
	GuildID   string    `json:"guildId"`
	OwnerID   string    `json:"ownerId"`
	UpdatedAt time.Time `json:"updatedAt"`
}
