package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/devfolio/internal/mail"
)

type fakeMailer struct {
	err  error
	sent []mail.Message
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeStore struct {
	saveErr   error
	saved     []string
	delivered []string
}

func (f *fakeStore) SaveMessage(_ context.Context, name, _, _, _ string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, name)
	return "msg-1", nil
}

func (f *fakeStore) MarkDelivered(_ context.Context, id string) error {
	f.delivered = append(f.delivered, id)
	return nil
}

func TestSubmit_Success(t *testing.T) {
	m := &fakeMailer{}
	st := &fakeStore{}
	svc := NewService(m, st, "owner@example.dev", "site@example.dev")

	err := svc.Submit(context.Background(), Request{Name: " Jane ", Email: "jane@example.com", Message: "Hello, nice portfolio!"}, Meta{ClientIP: "1.2.3.4"})
	require.NoError(t, err)

	require.Len(t, m.sent, 1)
	assert.Equal(t, "owner@example.dev", m.sent[0].To)
	assert.Equal(t, "Portfolio Contact: Jane", m.sent[0].Subject)
	assert.Equal(t, []string{"Jane"}, st.saved)
	assert.Equal(t, []string{"msg-1"}, st.delivered)
}

func TestSubmit_ValidationError(t *testing.T) {
	m := &fakeMailer{}
	st := &fakeStore{}
	svc := NewService(m, st, "", "")

	err := svc.Submit(context.Background(), Request{Name: "J", Email: "x", Message: "short"}, Meta{})
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
	assert.Empty(t, m.sent)
	assert.Empty(t, st.saved)
}

func TestSubmit_MailFailure(t *testing.T) {
	m := &fakeMailer{err: errors.New("connection refused")}
	st := &fakeStore{}
	svc := NewService(m, st, "", "")

	err := svc.Submit(context.Background(), valid(), Meta{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
	// Stored, but never marked delivered.
	assert.Len(t, st.saved, 1)
	assert.Empty(t, st.delivered)
}

func TestSubmit_NotConfigured(t *testing.T) {
	svc := NewService(&fakeMailer{err: mail.ErrNotConfigured}, nil, "", "")
	err := svc.Submit(context.Background(), valid(), Meta{})
	assert.ErrorIs(t, err, mail.ErrNotConfigured)

	svc = NewService(nil, nil, "", "")
	err = svc.Submit(context.Background(), valid(), Meta{})
	assert.ErrorIs(t, err, mail.ErrNotConfigured)
}

func TestSubmit_StoreFailureStillSends(t *testing.T) {
	m := &fakeMailer{}
	st := &fakeStore{saveErr: errors.New("disk full")}
	svc := NewService(m, st, "", "")

	require.NoError(t, svc.Submit(context.Background(), valid(), Meta{}))
	assert.Len(t, m.sent, 1)
	assert.Empty(t, st.delivered)
}
