package simplecms

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

var statusTestTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestStatusEncodeDecodeRoundTrip(t *testing.T) {
	author := TrustedAuthorID("author-1")
	editor := TrustedAuthorID("editor-1")

	tests := []struct {
		name   string
		status Status
	}{
		{
			name:   "draft",
			status: DraftStatus{EditableBy: []AuthorID{author, editor}},
		},
		{
			name:   "reviewing",
			status: ReviewingStatus{Reviewer: editor, SubmittedBy: author, SubmittedAt: statusTestTime},
		},
		{
			name:   "published",
			status: PublishedStatus{PublishedAt: statusTestTime, PublishedBy: editor, URL: "https://example.com/news/launch"},
		},
		{
			name: "archived over draft",
			status: ArchivedStatus{
				ArchivedAt: statusTestTime,
				ArchivedBy: editor,
				Reason:     "stale",
				Previous:   DraftStatus{EditableBy: []AuthorID{author}},
			},
		},
		{
			name: "archived over published",
			status: ArchivedStatus{
				ArchivedAt: statusTestTime,
				ArchivedBy: editor,
				Reason:     "superseded",
				Previous:   PublishedStatus{PublishedAt: statusTestTime.Add(-time.Hour), PublishedBy: editor, URL: "https://example.com/old"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeStatus(tt.status)
			if err != nil {
				t.Fatalf("EncodeStatus: %v", err)
			}
			decoded, err := DecodeStatus(data)
			if err != nil {
				t.Fatalf("DecodeStatus: %v", err)
			}
			if decoded.Kind() != tt.status.Kind() {
				t.Fatalf("round trip changed kind: %q -> %q", tt.status.Kind(), decoded.Kind())
			}
			// Compare through the string forms; time.Time equality via == is
			// unreliable across serialization.
			if fmt.Sprintf("%+v", decoded) != fmt.Sprintf("%+v", tt.status) {
				t.Errorf("round trip changed value:\n got %+v\nwant %+v", decoded, tt.status)
			}
		})
	}
}

func TestDecodeStatusRejectsInvalidPayloads(t *testing.T) {
	reviewing := `{"kind":"reviewing","data":{"reviewer":"ed","submitted_by":"au","submitted_at":"2026-03-14T09:30:00Z"}}`

	tests := []struct {
		name string
		data string
	}{
		{
			name: "unknown kind",
			data: `{"kind":"limbo","data":{}}`,
		},
		{
			name: "draft with empty editable set",
			data: `{"kind":"draft","data":{"editable_by":[]}}`,
		},
		{
			name: "reviewing without reviewer",
			data: `{"kind":"reviewing","data":{"submitted_by":"au","submitted_at":"2026-03-14T09:30:00Z"}}`,
		},
		{
			name: "published without url",
			data: `{"kind":"published","data":{"published_by":"ed","published_at":"2026-03-14T09:30:00Z"}}`,
		},
		{
			name: "archived without archiver",
			data: `{"kind":"archived","data":{"archived_at":"2026-03-14T09:30:00Z","previous":{"kind":"draft","data":{"editable_by":["au"]}}}}`,
		},
		{
			name: "archived over reviewing",
			data: `{"kind":"archived","data":{"archived_at":"2026-03-14T09:30:00Z","archived_by":"ed","previous":` + reviewing + `}}`,
		},
		{
			name: "not json",
			data: `]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeStatus([]byte(tt.data))
			if !errors.Is(err, ErrValidation) {
				t.Errorf("DecodeStatus error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestEncodeStatusNil(t *testing.T) {
	if _, err := EncodeStatus(nil); !errors.Is(err, ErrValidation) {
		t.Errorf("EncodeStatus(nil) error = %v, want ErrValidation", err)
	}
}

func TestDraftCanEdit(t *testing.T) {
	a := TrustedAuthorID("a")
	b := TrustedAuthorID("b")
	draft := DraftStatus{EditableBy: []AuthorID{a}}
	if !draft.CanEdit(a) {
		t.Errorf("member should be able to edit")
	}
	if draft.CanEdit(b) {
		t.Errorf("non-member should not be able to edit")
	}
}

func TestCloneStatusIsDeep(t *testing.T) {
	a := TrustedAuthorID("a")
	b := TrustedAuthorID("b")

	t.Run("draft editable set", func(t *testing.T) {
		original := DraftStatus{EditableBy: []AuthorID{a}}
		clone := cloneStatus(original).(DraftStatus)
		clone.EditableBy[0] = b
		if original.EditableBy[0] != a {
			t.Errorf("clone shares the editable set with the original")
		}
	})

	t.Run("archived previous draft", func(t *testing.T) {
		original := ArchivedStatus{
			ArchivedAt: statusTestTime,
			ArchivedBy: b,
			Previous:   DraftStatus{EditableBy: []AuthorID{a}},
		}
		clone := cloneStatus(original).(ArchivedStatus)
		clone.Previous.(DraftStatus).EditableBy[0] = b
		if original.Previous.(DraftStatus).EditableBy[0] != a {
			t.Errorf("clone shares the previous draft's editable set")
		}
	})
}
