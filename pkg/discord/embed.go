package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"portfolio/internal/domain/entities"
)

const (
	colorDelivered = 0x18BFEF
	colorFailed    = 0xFF6B6B
	embedTitle     = "📬 Nuevo mensaje de contacto"

	// Discord rejects embeds with longer descriptions.
	maxDescription = 4096
	maxFieldValue  = 1024
)

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// BuildContactEmbed summarizes a contact message for the site owner.
func BuildContactEmbed(m *entities.ContactMessage) *discordgo.MessageEmbed {
	color := colorDelivered
	status := "Entregado"
	if m.Status == entities.ContactFailed {
		color = colorFailed
		status = "Falló el envío"
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Nombre", Value: truncate(orDash(m.Name), maxFieldValue), Inline: true},
		{Name: "Email", Value: truncate(orDash(m.Email), maxFieldValue), Inline: true},
		{Name: "Idioma", Value: orDash(m.Locale.String()), Inline: true},
		{Name: "Página", Value: truncate(orDash(m.Origin), maxFieldValue), Inline: true},
		{Name: "Estado", Value: status, Inline: true},
	}
	if m.Error != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Error", Value: truncate(m.Error, maxFieldValue)})
	}

	return &discordgo.MessageEmbed{
		Title:       embedTitle,
		Description: truncate(orDash(m.Message), maxDescription),
		Color:       color,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%s • %s", m.ID, FormatSubmittedAt(m.SubmittedAt))},
	}
}
