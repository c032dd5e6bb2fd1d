package submissions

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a mock implementation of Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Approve(ctx context.Context, domain Domain, id, reviewerID uuid.UUID, notes string) (*Outcome, error) {
	args := m.Called(ctx, domain, id, reviewerID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Outcome), args.Error(1)
}

func (m *MockStore) Reject(ctx context.Context, domain Domain, id, reviewerID uuid.UUID, notes string) (*Outcome, error) {
	args := m.Called(ctx, domain, id, reviewerID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Outcome), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Decision(ctx context.Context, email, name, kind, title string, approved bool, notes string) error {
	args := m.Called(ctx, email, name, kind, title, approved, notes)
	return args.Error(0)
}

func TestApproveNotifiesSubmitter(t *testing.T) {
	store := new(MockStore)
	notifier := new(MockNotifier)
	wf := NewWorkflow(store, notifier, nil)

	id, reviewer := uuid.New(), uuid.New()
	out := &Outcome{Title: "Breath and Stillness", SubmitterEmail: "ana@example.com", SubmitterName: "Ana"}
	store.On("Approve", mock.Anything, DomainResource, id, reviewer, "solid writeup").Return(out, nil)
	notifier.On("Decision", mock.Anything, "ana@example.com", "Ana", "resource", "Breath and Stillness", true, "solid writeup").Return(nil)

	got, err := wf.Approve(context.Background(), DomainResource, id, reviewer, "solid writeup")
	require.NoError(t, err)
	assert.Equal(t, out, got)
	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRejectNotifiesWithRejection(t *testing.T) {
	store := new(MockStore)
	notifier := new(MockNotifier)
	wf := NewWorkflow(store, notifier, nil)

	id, reviewer := uuid.New(), uuid.New()
	out := &Outcome{Title: "Old Warehouse", SubmitterEmail: "bo@example.com", SubmitterName: "Bo"}
	store.On("Reject", mock.Anything, DomainVenue, id, reviewer, "no access info").Return(out, nil)
	notifier.On("Decision", mock.Anything, "bo@example.com", "Bo", "venue", "Old Warehouse", false, "no access info").Return(nil)

	_, err := wf.Reject(context.Background(), DomainVenue, id, reviewer, "no access info")
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestDecisionErrorSkipsNotification(t *testing.T) {
	store := new(MockStore)
	notifier := new(MockNotifier)
	wf := NewWorkflow(store, notifier, nil)

	id, reviewer := uuid.New(), uuid.New()
	store.On("Approve", mock.Anything, DomainApplication, id, reviewer, "").Return(nil, ErrAlreadyReviewed)

	_, err := wf.Approve(context.Background(), DomainApplication, id, reviewer, "")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	notifier.AssertNotCalled(t, "Decision", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifierFailureIsNotFatal(t *testing.T) {
	store := new(MockStore)
	notifier := new(MockNotifier)
	wf := NewWorkflow(store, notifier, nil)

	id, reviewer := uuid.New(), uuid.New()
	out := &Outcome{Title: "Evening Sit", SubmitterEmail: "cy@example.com", SubmitterName: "Cy"}
	store.On("Reject", mock.Anything, DomainResource, id, reviewer, "").Return(out, nil)
	notifier.On("Decision", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, false, mock.Anything).
		Return(errors.New("queue unavailable"))

	got, err := wf.Reject(context.Background(), DomainResource, id, reviewer, "")
	require.NoError(t, err, "an enqueue failure must not undo the committed decision")
	assert.Equal(t, out, got)
}

func TestNoNotifierIsFine(t *testing.T) {
	store := new(MockStore)
	wf := NewWorkflow(store, nil, nil)

	id, reviewer := uuid.New(), uuid.New()
	out := &Outcome{Title: "Quiet Room"}
	store.On("Approve", mock.Anything, DomainVenue, id, reviewer, "").Return(out, nil)

	_, err := wf.Approve(context.Background(), DomainVenue, id, reviewer, "")
	assert.NoError(t, err)
}

func TestDomainLabel(t *testing.T) {
	assert.Equal(t, "resource", DomainResource.Label())
	assert.Equal(t, "venue", DomainVenue.Label())
	assert.Equal(t, "facilitator application", DomainApplication.Label())
}
