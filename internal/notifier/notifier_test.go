package notifier_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"leadboard/internal/model"
	"leadboard/internal/notifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

type recordingWriter struct {
	mu      sync.Mutex
	updates []model.StageUpdate
	err     error
}

func (w *recordingWriter) WriteStage(ctx context.Context, u model.StageUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.updates = append(w.updates, u)
	return w.err
}

func (w *recordingWriter) snapshot() []model.StageUpdate {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]model.StageUpdate(nil), w.updates...)
}

func shutdown(t *testing.T, n *notifier.Notifier) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, n.Shutdown(ctx))
}

func TestNotifier_DeliversWithActingUser(t *testing.T) {
	// Arrange
	w := &recordingWriter{}
	n := notifier.New(w, notifier.Config{Workers: 2, UserID: "1"}, quietLogger())

	// Act
	n.Notify(42, model.StageDecisionMaking)
	shutdown(t, n)

	// Assert
	assert.Equal(t, []model.StageUpdate{{LeadID: 42, Stage: model.StageDecisionMaking, UserID: "1"}}, w.snapshot())
	assert.Equal(t, notifier.Stats{Sent: 1}, n.Stats())
}

func TestNotifier_NotifyDoesNotWaitForWriter(t *testing.T) {
	release := make(chan struct{})
	w := notifier.WriterFunc(func(ctx context.Context, u model.StageUpdate) error {
		<-release
		return nil
	})
	n := notifier.New(w, notifier.Config{Workers: 1, Buffer: 4}, quietLogger())

	returned := make(chan struct{})
	go func() {
		n.Notify(1, model.StageDiscussion)
		n.Notify(2, model.StageDiscussion)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on the writer")
	}
	close(release)
	shutdown(t, n)
	assert.Equal(t, uint64(2), n.Stats().Sent)
}

func TestNotifier_FailuresAreSwallowedAndReported(t *testing.T) {
	// Arrange
	w := &recordingWriter{err: errors.New("connection refused")}
	var mu sync.Mutex
	var hooked []model.StageUpdate
	n := notifier.New(w, notifier.Config{Workers: 1}, quietLogger(),
		notifier.WithFailureHook(func(u model.StageUpdate, err error) {
			mu.Lock()
			defer mu.Unlock()
			hooked = append(hooked, u)
		}))

	// Act
	n.Notify(7, model.StageContractDiscussion)
	shutdown(t, n)

	// Assert
	assert.Equal(t, notifier.Stats{Failed: 1}, n.Stats())
	require.Len(t, hooked, 1)
	assert.Equal(t, int64(7), hooked[0].LeadID)
	assert.Len(t, w.snapshot(), 1, "no retry expected")
}

func TestNotifier_DropsWhenSaturated(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	w := notifier.WriterFunc(func(ctx context.Context, u model.StageUpdate) error {
		started <- struct{}{}
		<-release
		return nil
	})
	var dropErr error
	n := notifier.New(w, notifier.Config{Workers: 1, Buffer: 1}, quietLogger(),
		notifier.WithFailureHook(func(u model.StageUpdate, err error) { dropErr = err }))

	n.Notify(1, model.StageDiscussion)
	<-started
	n.Notify(2, model.StageDiscussion) // buffered
	n.Notify(3, model.StageDiscussion) // no room

	assert.ErrorIs(t, dropErr, notifier.ErrSaturated)
	assert.Equal(t, uint64(1), n.Stats().Dropped)

	close(release)
	shutdown(t, n)
	assert.Equal(t, uint64(2), n.Stats().Sent)
}

func TestNotifier_AfterShutdown(t *testing.T) {
	w := &recordingWriter{}
	var dropErr error
	n := notifier.New(w, notifier.Config{}, quietLogger(),
		notifier.WithFailureHook(func(u model.StageUpdate, err error) { dropErr = err }))
	shutdown(t, n)

	n.Notify(1, model.StageNew)

	assert.ErrorIs(t, dropErr, notifier.ErrClosed)
	assert.Empty(t, w.snapshot())
	assert.NoError(t, n.Shutdown(context.Background()))
}

func TestFanout_JoinsErrors(t *testing.T) {
	ok := &recordingWriter{}
	bad := &recordingWriter{err: errors.New("boom")}

	err := notifier.Fanout{bad, ok}.WriteStage(context.Background(), model.StageUpdate{LeadID: 1})

	assert.EqualError(t, err, "boom")
	assert.Len(t, ok.snapshot(), 1)
	assert.NoError(t, notifier.Fanout{ok}.WriteStage(context.Background(), model.StageUpdate{LeadID: 2}))
}
