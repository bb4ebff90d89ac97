// Package discord holds the thin accessors the interactions endpoint
// needs on top of discordgo's wire types.
package discord

import (
	"github.com/bwmarrin/discordgo"
)

// UserID returns the invoking user's id, wherever the payload put it.
func UserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// MemberRoles returns the invoker's guild role ids.
func MemberRoles(i *discordgo.Interaction) []string {
	if i.Member == nil {
		return nil
	}
	return i.Member.Roles
}

// Subcommand returns the invoked subcommand and its options, or the
// top-level options when the command has no subcommands.
func Subcommand(d discordgo.ApplicationCommandInteractionData) (string, []*discordgo.ApplicationCommandInteractionDataOption) {
	for _, opt := range d.Options {
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
			return opt.Name, opt.Options
		}
	}
	return "", d.Options
}

func findOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range opts {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

// OptionString finds a string-valued option by name. Snowflake options
// (user, role, attachment) also carry their id as a string value.
func OptionString(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt := findOption(opts, name); opt != nil {
		if s, ok := opt.Value.(string); ok {
			return s
		}
	}
	return ""
}

// OptionInt finds an integer option by name. JSON numbers decode as
// float64.
func OptionInt(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	if opt := findOption(opts, name); opt != nil {
		switch v := opt.Value.(type) {
		case float64:
			return int(v)
		case int:
			return v
		}
	}
	return 0
}

// OptionBool finds a boolean option by name.
func OptionBool(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	if opt := findOption(opts, name); opt != nil {
		if b, ok := opt.Value.(bool); ok {
			return b
		}
	}
	return false
}

// FocusedOption returns the option currently being typed, if any.
func FocusedOption(opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range opts {
		if opt.Focused {
			return opt
		}
	}
	return nil
}

// ResolvedRole looks up the role an option points to. The name falls
// back to the raw id when the payload omitted the resolved object.
func ResolvedRole(d discordgo.ApplicationCommandInteractionData, opts []*discordgo.ApplicationCommandInteractionDataOption, name string) (string, string) {
	id := OptionString(opts, name)
	if id == "" {
		return "", ""
	}
	if d.Resolved != nil && d.Resolved.Roles != nil {
		if role := d.Resolved.Roles[id]; role != nil {
			return role.ID, role.Name
		}
	}
	return id, id
}

// ResolvedAttachment looks up the attachment an option points to.
func ResolvedAttachment(d discordgo.ApplicationCommandInteractionData, opts []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.MessageAttachment {
	if d.Resolved == nil || d.Resolved.Attachments == nil {
		return nil
	}
	id := OptionString(opts, name)
	if id == "" {
		return nil
	}
	return d.Resolved.Attachments[id]
}
