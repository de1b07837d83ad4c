// Package discord implements the platform abstraction over discordgo.
package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/redcell-sec/reportbot/src/shared/platform"
)

// Connector establishes discordgo-backed sessions.
type Connector struct{}

func (Connector) Connect(ctx context.Context, creds platform.Credentials) (platform.Session, error) {
	dg, err := discordgo.New("Bot " + creds.Token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	s := &Session{dg: dg, phone: creds.Phone}
	dg.AddHandler(s.handleMessageCreate)
	return s, nil
}

// Session adapts one discordgo connection to the platform interface.
type Session struct {
	dg    *discordgo.Session
	phone string

	mu        sync.RWMutex
	onMessage func(platform.Message)
}

func (s *Session) Account() platform.Account {
	u := s.dg.State.User
	id, _ := strconv.ParseInt(u.ID, 10, 64)
	return platform.Account{ID: id, Phone: s.phone, Handle: u.Username}
}

func (s *Session) OnMessage(fn func(platform.Message)) {
	s.mu.Lock()
	s.onMessage = fn
	s.mu.Unlock()
}

func (s *Session) handleMessageCreate(dg *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == dg.State.User.ID {
		return
	}

	s.mu.RLock()
	fn := s.onMessage
	s.mu.RUnlock()
	if fn == nil {
		return
	}

	senderID, _ := strconv.ParseInt(m.Author.ID, 10, 64)
	fn(platform.Message{SenderID: senderID, ChannelID: m.ChannelID, Text: m.Content})
}

func (s *Session) SendText(ctx context.Context, destination, text string) error {
	_, err := s.dg.ChannelMessageSend(destination, text)
	return err
}

// ResolveID looks a numeric reference up as a user first, then as a channel
// or guild.
func (s *Session) ResolveID(ctx context.Context, id int64) (platform.Entity, error) {
	ref := strconv.FormatInt(id, 10)

	if u, err := s.dg.User(ref); err == nil {
		return userEntity(u), nil
	}
	if ch, err := s.dg.Channel(ref); err == nil {
		return channelEntity(ch), nil
	}
	if g, err := s.dg.Guild(ref); err == nil {
		return platform.Group{ID: id, Title: g.Name}, nil
	}

	return nil, platform.ErrNotFound
}

// ResolveHandle searches the guilds this account can see for a member or
// channel with the given name.
func (s *Session) ResolveHandle(ctx context.Context, handle string) (platform.Entity, error) {
	for _, g := range s.dg.State.Guilds {
		members, err := s.dg.GuildMembersSearch(g.ID, handle, 1)
		if err == nil && len(members) > 0 && strings.EqualFold(members[0].User.Username, handle) {
			return userEntity(members[0].User), nil
		}

		channels, err := s.dg.GuildChannels(g.ID)
		if err != nil {
			continue
		}
		for _, ch := range channels {
			if strings.EqualFold(ch.Name, handle) {
				return channelEntity(ch), nil
			}
		}
	}

	return nil, platform.ErrNotFound
}

func (s *Session) Close() error {
	return s.dg.Close()
}

func userEntity(u *discordgo.User) platform.User {
	id, _ := strconv.ParseInt(u.ID, 10, 64)
	return platform.User{ID: id, Handle: u.Username, FirstName: u.GlobalName}
}

func channelEntity(ch *discordgo.Channel) platform.Entity {
	id, _ := strconv.ParseInt(ch.ID, 10, 64)

	// Announcement channels are broadcast feeds; everything else is a
	// membership chat.
	if ch.Type == discordgo.ChannelTypeGuildNews {
		return platform.Channel{ID: id, Handle: ch.Name, Title: ch.Name}
	}
	return platform.Group{ID: id, Handle: ch.Name, Title: ch.Name}
}
