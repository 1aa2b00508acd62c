package ui

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/quill/internal/domain"
)

// manualScheduler records scheduled callbacks; tests fire them explicitly.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) fire(i int) {
	s.mu.Lock()
	t := s.timers[i]
	s.mu.Unlock()
	if !t.stopped {
		t.f()
	}
}

// immediateScheduler runs callbacks before AfterFunc returns.
type immediateScheduler struct{}

func (immediateScheduler) AfterFunc(_ time.Duration, f func()) Timer {
	f()
	return &manualTimer{stopped: true}
}

func TestNotifierAppliesDefaultsAndExpires(t *testing.T) {
	sched := &manualScheduler{}
	n := NewNotifier(WithScheduler(sched))

	first := n.Notify(Notification{Message: "saved"})
	second := n.Notify(Notification{Message: "failed", Type: TypeError, Timeout: time.Second})
	require.NotEmpty(t, first)
	require.NotEqual(t, first, second)

	list := n.List()
	require.Len(t, list, 2)
	assert.Equal(t, TypeInfo, list[0].Type)
	assert.Equal(t, DefaultNotificationTimeout, list[0].Timeout)
	assert.Equal(t, "failed", list[1].Message)

	require.Len(t, sched.timers, 2)
	assert.Equal(t, DefaultNotificationTimeout, sched.timers[0].d)
	assert.Equal(t, time.Second, sched.timers[1].d)

	sched.fire(0)
	list = n.List()
	require.Len(t, list, 1)
	assert.Equal(t, second, list[0].ID)
}

func TestNotifierDismissStopsTimer(t *testing.T) {
	sched := &manualScheduler{}
	n := NewNotifier(WithScheduler(sched), WithDefaultTimeout(time.Minute))

	id := n.Notify(Notification{Message: "hello"})
	assert.True(t, n.Dismiss(id))
	assert.Empty(t, n.List())
	assert.True(t, sched.timers[0].stopped)
	assert.Equal(t, time.Minute, sched.timers[0].d)
	assert.False(t, n.Dismiss(id))
}

func TestNotifierHandlesSynchronousScheduler(t *testing.T) {
	n := NewNotifier(WithScheduler(immediateScheduler{}))
	id := n.Notify(Notification{Message: "gone"})
	assert.NotEmpty(t, id)
	assert.Empty(t, n.List())
}

func TestNotifierCloseDropsEverything(t *testing.T) {
	sched := &manualScheduler{}
	n := NewNotifier(WithScheduler(sched))
	n.Notify(Notification{Message: "a"})
	n.Close()

	assert.Empty(t, n.List())
	assert.True(t, sched.timers[0].stopped)
	assert.Empty(t, n.Notify(Notification{Message: "late"}))
}

func TestNotifierRealClockExpiry(t *testing.T) {
	n := NewNotifier()
	n.Notify(Notification{Message: "short", Timeout: 10 * time.Millisecond})
	require.Len(t, n.List(), 1)
	assert.Eventually(t, func() bool { return len(n.List()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestArticleFormValidation(t *testing.T) {
	f := NewArticleForm()
	assert.False(t, f.Valid())
	assert.Equal(t, []string{"title", "description", "tags"}, f.MissingFields())

	f.Title = "T"
	f.Description = "D"
	assert.False(t, f.Valid())

	f.SetTags([]string{" go ", "", "go", "http"})
	assert.Equal(t, []string{"go", "http"}, f.SelectedTags)
	assert.True(t, f.Valid(), "body is optional")

	f.ShowErrors = true
	f.Reset()
	assert.Equal(t, ArticleForm{SelectedTags: []string{}}, *f)
}

func TestArticleFormRoundTrip(t *testing.T) {
	f := FromArticle(domain.Article{
		Slug:        "t",
		Title:       "T",
		Description: "D",
		Body:        "B",
		TagList:     []string{"go"},
	})
	assert.True(t, f.Valid())
	assert.Equal(t, domain.ArticleInput{Title: "T", Description: "D", Body: "B", TagList: []string{"go"}}, f.Input())
}

func TestTooltipShowAndHide(t *testing.T) {
	var tip Tooltip
	assert.Equal(t, TooltipState{}, tip.State())

	tip.ShowAt(Point{X: 10, Y: 20}, "Edit article")
	assert.Equal(t, TooltipState{Show: true, Text: "Edit article", X: 10, Y: 20}, tip.State())

	tip.Hide()
	assert.Equal(t, TooltipState{Show: false, Text: "Edit article", X: 10, Y: 20}, tip.State())
}
