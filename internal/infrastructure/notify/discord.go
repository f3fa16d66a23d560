package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"portfolio/internal/domain/entities"
	"portfolio/internal/ports/output"
	"portfolio/pkg/discord"
)

var _ output.Notifier = (*DiscordNotifier)(nil)

// WebhookExecutor is the part of *discordgo.Session the notifier needs.
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier posts every contact message to a Discord channel webhook.
type DiscordNotifier struct {
	exec   WebhookExecutor
	id     string
	token  string
	logger *zap.Logger
}

// NewDiscordNotifier builds a notifier from a full webhook URL. Webhooks do
// not need a bot token, so the session is created without one.
func NewDiscordNotifier(webhookURL string, logger *zap.Logger) (*DiscordNotifier, error) {
	id, token, err := discord.ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return newDiscordNotifier(s, id, token, logger), nil
}

func newDiscordNotifier(exec WebhookExecutor, id, token string, logger *zap.Logger) *DiscordNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscordNotifier{exec: exec, id: id, token: token, logger: logger}
}

func (n *DiscordNotifier) Notify(ctx context.Context, m *entities.ContactMessage) error {
	params := &discordgo.WebhookParams{
		Username: "portfolio",
		Embeds:   []*discordgo.MessageEmbed{discord.BuildContactEmbed(m)},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	}
	if _, err := n.exec.WebhookExecute(n.id, n.token, false, params, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord webhook: %w", err)
	}
	n.logger.Debug("contact message announced", zap.Stringer("id", m.ID))
	return nil
}
