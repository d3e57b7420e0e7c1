package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/touchpaint/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func capture(t *testing.T, fail error) *[]sent {
	t.Helper()
	var got []sent
	orig := send
	t.Cleanup(func() { send = orig })
	next := uint32(0)
	send = func(title, body string, opts platform.Options) (uint32, error) {
		s := sent{title: title, body: body, opts: opts}
		if opts.IconPath != "" {
			_, err := os.Stat(opts.IconPath)
			s.iconExisted = err == nil
		}
		got = append(got, s)
		if fail != nil {
			return 0, fail
		}
		next++
		return next, nil
	}
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t, nil)
	n := New(DefaultPreferences())
	n.Mode("paint")
	n.Save("x.png")
	n.Copy("", nil)
	if len(*got) != 0 {
		t.Fatalf("expected no notifications, got %v", *got)
	}

	var nilNotifier *Notifier
	nilNotifier.Mode("paint")
}

func TestModeReplacesPrevious(t *testing.T) {
	got := capture(t, nil)
	n := New(DefaultPreferences())
	n.Enable(EventMode, true)

	n.Mode("fill")
	n.Mode("box")

	if len(*got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(*got))
	}
	if (*got)[0].body != "Mode: fill" || (*got)[0].title != "Touchpaint" {
		t.Errorf("unexpected first notification %+v", (*got)[0])
	}
	if (*got)[0].opts.Replaces != 0 || (*got)[1].opts.Replaces != 1 {
		t.Errorf("expected second notification to replace the first, got %+v", *got)
	}
}

func TestFailedSendKeepsReplaceID(t *testing.T) {
	got := capture(t, errors.New("no session bus"))
	n := New(DefaultPreferences())
	n.Enable(EventMode, true)
	n.Mode("fill")
	n.Mode("box")
	if (*got)[1].opts.Replaces != 0 {
		t.Fatalf("replace id set from failed send: %+v", (*got)[1])
	}
}

func TestSaveUsesAbsolutePathAndIcon(t *testing.T) {
	got := capture(t, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)

	if len(*got) != 1 || (*got)[0].body != "Saved "+path || (*got)[0].opts.IconPath != path {
		t.Fatalf("unexpected notification %+v", *got)
	}
}

func TestCopyPreviewIsTemporary(t *testing.T) {
	got := capture(t, nil)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("", image.NewRGBA(image.Rect(0, 0, 4, 4)))

	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %d", len(*got))
	}
	s := (*got)[0]
	if s.body != "Copied snapshot to clipboard" || !s.iconExisted {
		t.Fatalf("unexpected notification %+v", s)
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview %s not removed", s.opts.IconPath)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("TOUCHPAINT_NOTIFY_TITLE", "Panel")
	t.Setenv("TOUCHPAINT_NOTIFY_MODE_TEXT", "now %s")
	prefs := LoadPreferences()
	if prefs.Title != "Panel" || prefs.Events[EventMode].Template != "now %s" {
		t.Fatalf("unexpected prefs %+v", prefs)
	}
	if prefs.Events[EventSave].Template != "Saved %s" {
		t.Fatalf("save template lost: %+v", prefs.Events)
	}
}
