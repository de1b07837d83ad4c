// Package platform abstracts the messaging network client. The agent only
// consumes these capabilities; establishing sessions, wire protocol and
// authentication all live behind the Connector implementation.
package platform

import (
	"context"
	"errors"
)

// ErrNotFound reports that a directory lookup matched no entity. Callers
// treat it as an expected outcome, not a fault.
var ErrNotFound = errors.New("platform: entity not found")

// Account identifies the authenticated identity behind one session.
type Account struct {
	ID     int64
	Phone  string
	Handle string
}

// Message is one inbound text message observed by a session.
type Message struct {
	SenderID  int64
	ChannelID string
	Text      string
}

// Entity is the tagged union produced by directory lookups. Downstream code
// switches on the concrete type instead of probing attributes.
type Entity interface {
	entity()
}

type User struct {
	ID        int64
	Handle    string
	FirstName string
	LastName  string
}

type Channel struct {
	ID     int64
	Handle string
	Title  string
}

type Group struct {
	ID     int64
	Handle string
	Title  string
}

func (User) entity()    {}
func (Channel) entity() {}
func (Group) entity()   {}

// Directory is the entity lookup capability of a connected session.
type Directory interface {
	ResolveHandle(ctx context.Context, handle string) (Entity, error)
	ResolveID(ctx context.Context, id int64) (Entity, error)
}

// Session is one authenticated connection under one account identity.
type Session interface {
	Directory

	Account() Account
	SendText(ctx context.Context, destination, text string) error
	// OnMessage registers the inbound message callback. The callback must
	// not block; workers queue and process messages on their own goroutine.
	OnMessage(fn func(Message))
	Close() error
}

// Connector establishes sessions from provisioned credentials.
type Connector interface {
	Connect(ctx context.Context, creds Credentials) (Session, error)
}
