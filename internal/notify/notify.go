package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/p-shah256/bridge/pkg/types"
)

// discord rejects messages longer than this
const maxMessageLength = 2000

// Notifier is told when a matching run has produced results.
type Notifier interface {
	MatchesReady(ctx context.Context, profile *types.UserProfile, matches []types.MatchWithJob) error
}

type Nop struct{}

func (Nop) MatchesReady(context.Context, *types.UserProfile, []types.MatchWithJob) error { return nil }

type messageSender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Discord posts a ranked match summary to one channel.
type Discord struct {
	session   *discordgo.Session
	sender    messageSender
	channelID string
}

func NewDiscord(token, channelID string) (*Discord, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return &Discord{session: session, sender: session, channelID: channelID}, nil
}

func (d *Discord) Close() error {
	if d.session == nil {
		return nil
	}
	return d.session.Close()
}

func (d *Discord) MatchesReady(ctx context.Context, profile *types.UserProfile, matches []types.MatchWithJob) error {
	content := Summary(profile, matches)
	if _, err := d.sender.ChannelMessageSend(d.channelID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send match summary: %w", err)
	}
	slog.Info("match summary sent",
		"component", "notify",
		"channel_id", d.channelID,
		"matches", len(matches))
	return nil
}

// Summary renders matches as a ranked list, best first.
func Summary(profile *types.UserProfile, matches []types.MatchWithJob) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**New matches for %s** (%d)\n", profile.FullName, len(matches))
	for i, m := range matches {
		title, where := m.JobID, ""
		if m.Job != nil {
			title = fmt.Sprintf("%s at %s", m.Job.Title, m.Job.Company)
			where = fmt.Sprintf(" (%s)", m.Job.Country)
		}
		line := fmt.Sprintf("%d. %s%s: score %d, success %d%%, %s\n",
			i+1, title, where, m.MatchScore, m.SuccessProbability, m.OverallDifficulty)
		if b.Len()+len(line) > maxMessageLength-4 {
			b.WriteString("...\n")
			break
		}
		b.WriteString(line)
	}
	return strings.TrimRight(b.String(), "\n")
}
