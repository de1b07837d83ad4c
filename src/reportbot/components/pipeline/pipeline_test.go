package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcell-sec/reportbot/src/shared/platform"
	"github.com/redcell-sec/reportbot/src/shared/store"
	"github.com/redcell-sec/reportbot/src/shared/testutil"
)

// fakeSession implements platform.Session over canned directory data.
type fakeSession struct {
	account  platform.Account
	byID     map[int64]platform.Entity
	byHandle map[string]platform.Entity
	sent     []string
}

func newFakeSession() *fakeSession {
	alice := platform.User{ID: 101, Handle: "alice", FirstName: "Alice"}
	news := platform.Channel{ID: -200, Handle: "newsfeed", Title: "News Feed"}

	return &fakeSession{
		account:  platform.Account{ID: 7, Phone: "+15550001111", Handle: "operator"},
		byID:     map[int64]platform.Entity{101: alice, -200: news},
		byHandle: map[string]platform.Entity{"alice": alice, "newsfeed": news},
	}
}

func (f *fakeSession) Account() platform.Account { return f.account }

func (f *fakeSession) ResolveID(ctx context.Context, id int64) (platform.Entity, error) {
	ent, ok := f.byID[id]
	if !ok {
		return nil, platform.ErrNotFound
	}
	return ent, nil
}

func (f *fakeSession) ResolveHandle(ctx context.Context, handle string) (platform.Entity, error) {
	ent, ok := f.byHandle[strings.ToLower(handle)]
	if !ok {
		return nil, platform.ErrNotFound
	}
	return ent, nil
}

func (f *fakeSession) SendText(ctx context.Context, destination, text string) error {
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSession) OnMessage(fn func(platform.Message)) {}
func (f *fakeSession) Close() error                        { return nil }

func newTestPipeline(t *testing.T) (*Pipeline, *store.Store) {
	st := store.New(testutil.OpenDB(t))
	return New(st, nil), st
}

func handle(t *testing.T, p *Pipeline, sess platform.Session, text string) string {
	t.Helper()
	return p.HandleMessage(context.Background(), sess, platform.Message{SenderID: 1, ChannelID: "c1", Text: text})
}

func TestReportCommandPersistsAndAcks(t *testing.T) {
	p, st := newTestPipeline(t)
	sess := newFakeSession()

	reply := handle(t, p, sess, "/report_user @alice phishing login page")
	assert.Contains(t, reply, "Report #1")
	assert.Contains(t, reply, "phishing")

	reports, err := st.ListByReporter(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, int64(7), r.ReporterID)
	assert.Equal(t, "+15550001111", r.ReporterPhone)
	assert.Equal(t, "user", r.TargetType)
	assert.Equal(t, int64(101), r.TargetID)
	assert.Equal(t, "alice", r.TargetUsername)
	assert.Equal(t, "Alice", r.TargetTitle)
	assert.Equal(t, "phishing", r.Category)
	assert.Equal(t, "Phishing: phishing login page", r.Reason)
	assert.Equal(t, 5, r.Severity)
	assert.Equal(t, "pending", r.Status)
}

func TestReportByNumericID(t *testing.T) {
	p, st := newTestPipeline(t)
	sess := newFakeSession()

	reply := handle(t, p, sess, "/report_channel -200 crypto_scam investment fraud")
	assert.Contains(t, reply, "Report #1")

	reports, err := st.ListByReporter(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "channel", reports[0].TargetType)
	assert.Equal(t, "scam", reports[0].Category)
}

func TestReportWithoutReasonDefaultsToSpam(t *testing.T) {
	p, st := newTestPipeline(t)
	sess := newFakeSession()

	handle(t, p, sess, "/report_user alice")

	reports, err := st.ListByReporter(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "spam", reports[0].Category)
	assert.Equal(t, 2, reports[0].Severity)
	assert.Equal(t, "Spam", reports[0].Reason)
}

func TestReportTargetNotFoundPersistsNothing(t *testing.T) {
	p, st := newTestPipeline(t)
	sess := newFakeSession()

	reply := handle(t, p, sess, "/report_user @nobody spam")
	assert.Contains(t, reply, "not found")

	total, err := st.Total(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestReportInvalidTargetFormat(t *testing.T) {
	p, st := newTestPipeline(t)
	sess := newFakeSession()

	reply := handle(t, p, sess, "/report_user @bad%token spam")
	assert.Contains(t, reply, "Invalid target format")

	total, err := st.Total(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestMalformedReportShowsUsage(t *testing.T) {
	p, _ := newTestPipeline(t)
	sess := newFakeSession()

	reply := handle(t, p, sess, "/report_user")
	assert.Contains(t, reply, "Usage:")
}

func TestMyReports(t *testing.T) {
	p, _ := newTestPipeline(t)
	sess := newFakeSession()

	reply := handle(t, p, sess, "/my_reports")
	assert.Contains(t, reply, "No reports yet")

	handle(t, p, sess, "/report_user @alice fraud")

	reply = handle(t, p, sess, "/my_reports")
	assert.Contains(t, reply, "#1")
	assert.Contains(t, reply, "scam")
}

func TestStats(t *testing.T) {
	p, _ := newTestPipeline(t)
	sess := newFakeSession()

	handle(t, p, sess, "/report_user @alice fraud")
	handle(t, p, sess, "/report_channel newsfeed spam ads")

	reply := handle(t, p, sess, "/stats")
	assert.Contains(t, reply, "total: 2")
	assert.Contains(t, reply, "scam")
	assert.Contains(t, reply, "spam")
}

func TestStartAndCategories(t *testing.T) {
	p, _ := newTestPipeline(t)
	sess := newFakeSession()

	assert.Contains(t, handle(t, p, sess, "/start"), "/report_user")
	assert.Contains(t, handle(t, p, sess, "/categories"), "phishing")
}

func TestNonCommandIsIgnored(t *testing.T) {
	p, _ := newTestPipeline(t)
	sess := newFakeSession()

	assert.Empty(t, handle(t, p, sess, "hello there"))
	assert.Empty(t, handle(t, p, sess, ""))
}

func TestReasonIsSanitized(t *testing.T) {
	p, st := newTestPipeline(t)
	sess := newFakeSession()

	handle(t, p, sess, "/report_user alice <script>alert(1)</script> fraud")

	reports, err := st.ListByReporter(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.NotContains(t, reports[0].Reason, "<script>")
	assert.Equal(t, "scam", reports[0].Category)
}
