package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-gateway/internal/conversation"
)

type recordingNotifier struct {
	mu      sync.Mutex
	calls   []string
	failFor map[string]error
}

func (n *recordingNotifier) Notify(_ context.Context, reviewerID, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, reviewerID)
	if err, ok := n.failFor[reviewerID]; ok {
		return err
	}
	return nil
}

type failingStore struct{}

func (failingStore) Save(context.Context, conversation.Dossier) error {
	return errors.New("connection reset")
}

func sampleDossier() conversation.Dossier {
	return conversation.Dossier{
		ID:             "5f4c9d0e-0000-0000-0000-000000000001",
		UserID:         "42",
		DisplayName:    "ivan",
		Phone:          "+70000000000",
		FullName:       "Иван Иванов",
		SNILS:          "11223344595",
		LookupReport:   "Результаты поиска по номеру телефона:\nOLX: пусто",
		DocumentReport: "Кредитная история: (данные не реализованы)",
		ReceivedAt:     time.Now().UTC(),
	}
}

func TestDispatchPersistsThenNotifiesEveryReviewer(t *testing.T) {
	store := NewMemoryRequestStore()
	notifier := &recordingNotifier{}
	d, err := New(store, notifier, []string{"r1", "r2", "r3"})
	require.NoError(t, err)

	require.NoError(t, d.Dispatch(context.Background(), sampleDossier()))

	require.Len(t, store.All(), 1)
	assert.Equal(t, []string{"r1", "r2", "r3"}, notifier.calls)
}

func TestDispatchOneReviewerFailureDoesNotBlockOthers(t *testing.T) {
	store := NewMemoryRequestStore()
	notifier := &recordingNotifier{failFor: map[string]error{"r2": errors.New("timeout")}}
	d, err := New(store, notifier, []string{"r1", "r2", "r3"})
	require.NoError(t, err)

	require.NoError(t, d.Dispatch(context.Background(), sampleDossier()))
	assert.Equal(t, []string{"r1", "r2", "r3"}, notifier.calls)
}

func TestDispatchPersistenceFailureAbortsNotifications(t *testing.T) {
	notifier := &recordingNotifier{}
	d, err := New(failingStore{}, notifier, []string{"r1"})
	require.NoError(t, err)

	err = d.Dispatch(context.Background(), sampleDossier())
	require.Error(t, err)
	assert.Empty(t, notifier.calls, "no notification may go out for an unpersisted dossier")
}

func TestReviewerMessage(t *testing.T) {
	text := ReviewerMessage(sampleDossier())
	assert.Contains(t, text, "Новая заявка:")
	assert.Contains(t, text, "Пользователь: @ivan (ID: 42)")
	assert.Contains(t, text, "Телефон: +70000000000")
	assert.Contains(t, text, "ФИО: Иван Иванов")
	assert.Contains(t, text, "СНИЛС: 11223344595")
	assert.Contains(t, text, "Паспорт: -")
	assert.Contains(t, text, "Результаты проверки:\nКредитная история: (данные не реализованы)")
}

func TestNewValidatesDependencies(t *testing.T) {
	_, err := New(nil, &recordingNotifier{}, nil)
	assert.Error(t, err)

	_, err = New(NewMemoryRequestStore(), nil, nil)
	assert.Error(t, err)
}
