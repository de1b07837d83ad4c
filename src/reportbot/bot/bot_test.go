package bot

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcell-sec/reportbot/src/reportbot/components/pipeline"
	"github.com/redcell-sec/reportbot/src/shared/platform"
	"github.com/redcell-sec/reportbot/src/shared/store"
	"github.com/redcell-sec/reportbot/src/shared/testutil"
)

// fakeSession feeds messages through the registered callback and records
// replies.
type fakeSession struct {
	account platform.Account
	entity  platform.Entity

	mu        sync.Mutex
	onMessage func(platform.Message)
	sent      []string
}

func (f *fakeSession) Account() platform.Account { return f.account }

func (f *fakeSession) ResolveID(ctx context.Context, id int64) (platform.Entity, error) {
	if f.entity == nil {
		return nil, platform.ErrNotFound
	}
	return f.entity, nil
}

func (f *fakeSession) ResolveHandle(ctx context.Context, handle string) (platform.Entity, error) {
	if f.entity == nil {
		return nil, platform.ErrNotFound
	}
	return f.entity, nil
}

func (f *fakeSession) SendText(ctx context.Context, destination, text string) error {
	f.mu.Lock()
	f.sent = append(f.sent, text)
	f.mu.Unlock()
	return nil
}

func (f *fakeSession) OnMessage(fn func(platform.Message)) {
	f.mu.Lock()
	f.onMessage = fn
	f.mu.Unlock()
}

func (f *fakeSession) Close() error { return nil }

func (f *fakeSession) deliver(text string) {
	f.mu.Lock()
	fn := f.onMessage
	f.mu.Unlock()
	fn(platform.Message{SenderID: 1, ChannelID: "c1", Text: text})
}

func (f *fakeSession) replies() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func waitForReplies(t *testing.T, sess *fakeSession, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := sess.replies(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d replies, have %d", n, len(sess.replies()))
	return nil
}

func TestManagerDispatchesCommands(t *testing.T) {
	st := store.New(testutil.OpenDB(t))
	m := NewManager(pipeline.New(st, nil), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := &fakeSession{
		account: platform.Account{ID: 7, Phone: "+15550001111", Handle: "operator"},
		entity:  platform.User{ID: 101, Handle: "alice", FirstName: "Alice"},
	}
	m.Attach(ctx, sess)

	sess.deliver("/report_user @alice fraud")
	replies := waitForReplies(t, sess, 1)
	assert.Contains(t, replies[0], "Report #1")

	total, err := st.Total(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	cancel()
	m.Close()
}

func TestManagerRateLimitsReportCommands(t *testing.T) {
	st := store.New(testutil.OpenDB(t))
	m := NewManager(pipeline.New(st, nil), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := &fakeSession{
		account: platform.Account{ID: 7},
		entity:  platform.User{ID: 101, Handle: "alice"},
	}
	m.Attach(ctx, sess)

	sess.deliver("/report_user @alice fraud")
	sess.deliver("/report_user @alice fraud")
	replies := waitForReplies(t, sess, 2)

	assert.Contains(t, replies[0], "Report #1")
	assert.Contains(t, replies[1], "Please wait")

	// Management commands stay exempt from the limit.
	sess.deliver("/my_reports")
	replies = waitForReplies(t, sess, 3)
	assert.False(t, strings.Contains(replies[2], "Please wait"))

	total, err := st.Total(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	cancel()
	m.Close()
}

func TestManagerIgnoresNonCommands(t *testing.T) {
	st := store.New(testutil.OpenDB(t))
	m := NewManager(pipeline.New(st, nil), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := &fakeSession{account: platform.Account{ID: 7}}
	m.Attach(ctx, sess)

	sess.deliver("just chatting")
	sess.deliver("/stats")
	replies := waitForReplies(t, sess, 1)
	assert.Contains(t, replies[0], "total: 0")

	cancel()
	m.Close()
}
