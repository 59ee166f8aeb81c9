package workflow

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expiry(t *testing.T, cmd tea.Cmd) ToastExpiredMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(ToastExpiredMsg)
	require.True(t, ok)
	return msg
}

func TestToastSecondShowReplacesFirst(t *testing.T) {
	toast := NewToast("products")
	toast.Duration = 5 * time.Millisecond

	first := toast.Show("Uploaded", ToastSuccess)
	second := toast.Show("Server Error: 500", ToastError)
	assert.Equal(t, "Server Error: 500", toast.Message())
	assert.True(t, toast.IsError())

	assert.False(t, toast.Expire(expiry(t, first)), "stale timer must not hide the newer toast")
	assert.True(t, toast.Visible())

	assert.True(t, toast.Expire(expiry(t, second)))
	assert.False(t, toast.Visible())
}

func TestToastIgnoresOtherOwners(t *testing.T) {
	toast := NewToast("banners")
	toast.Duration = time.Millisecond
	cmd := toast.Show("Banner deleted", ToastSuccess)
	msg := expiry(t, cmd)
	msg.Owner = "poojas"
	assert.False(t, toast.Expire(msg))
	assert.True(t, toast.Visible())
}

func TestToastDismissCancelsTimer(t *testing.T) {
	toast := NewToast("users")
	toast.Duration = time.Millisecond
	cmd := toast.Show("hello", ToastSuccess)
	toast.Dismiss()
	assert.False(t, toast.Visible())
	assert.False(t, toast.Expire(expiry(t, cmd)))
}

func TestToastStopIgnoresLaterShows(t *testing.T) {
	toast := NewToast("login")
	toast.Stop()
	assert.Nil(t, toast.Show("late", ToastSuccess))
	assert.False(t, toast.Visible())
}
