package domain_test

import (
	"encoding/json"
	"testing"

	"eductl/internal/modules/query/domain"
)

func TestNormalizeShapePrecedence(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"bare array", `[{"_id":"a"},{"_id":"b"}]`, 2},
		{"data envelope", `{"success":true,"data":[{"_id":"a"}]}`, 1},
		{"items envelope", `{"items":[{"_id":"a"},{"_id":"b"},{"_id":"c"}]}`, 3},
		{"data wins over items", `{"data":[{"_id":"a"}],"items":[{"_id":"b"},{"_id":"c"}]}`, 1},
		{"null body", `null`, 0},
		{"empty body", ``, 0},
		{"empty array", `[]`, 0},
		{"single object wraps", `{"_id":"a","title":"Algebra"}`, 1},
		{"scalar wraps", `42`, 1},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := domain.Normalize([]byte(tc.raw))
			if len(got) != tc.want {
				t.Fatalf("normalize %s: expected %d items, got %d", tc.name, tc.want, len(got))
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()
	first := domain.Normalize([]byte(`{"data":[{"_id":"a"},{"_id":"b"}]}`))
	encoded, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal normalized list: %v", err)
	}
	second := domain.Normalize(encoded)
	if len(second) != len(first) {
		t.Fatalf("expected %d items after renormalizing, got %d", len(first), len(second))
	}
	for i := range first {
		if string(first[i]) != string(second[i]) {
			t.Fatalf("item %d changed: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestMakeKeyCanonicalizesArgs(t *testing.T) {
	t.Parallel()
	a := domain.MakeKey("/lesson", map[string]string{"classLevel": "9", "sort": "title"})
	b := domain.MakeKey("/lesson", map[string]string{"sort": "title", "classLevel": "9"})
	if a != b {
		t.Fatalf("expected identical keys, got %q and %q", a, b)
	}
	if domain.MakeKey("/lesson", nil) != domain.Key("/lesson") {
		t.Fatalf("argless key must be the bare path")
	}
}

func TestTagMatching(t *testing.T) {
	t.Parallel()
	typeLevel := domain.TypeTag("lessons")
	if !typeLevel.Matches(domain.ItemTag("lessons", "a1")) {
		t.Fatalf("type-level tag must match item tags of its type")
	}
	if !typeLevel.Matches(domain.ListTag("lessons")) {
		t.Fatalf("type-level tag must match the collection tag")
	}
	if typeLevel.Matches(domain.ListTag("exams")) {
		t.Fatalf("type-level tag must not cross entity types")
	}
	item := domain.ItemTag("lessons", "a1")
	if item.Matches(domain.ItemTag("lessons", "a2")) {
		t.Fatalf("item tag must only match its own id")
	}
}

func TestDeriveTagsAlwaysIncludesListTag(t *testing.T) {
	t.Parallel()
	tags := domain.DeriveTags("lessons", nil)
	if len(tags) != 1 || tags[0] != domain.ListTag("lessons") {
		t.Fatalf("empty read must still provide the collection tag, got %v", tags)
	}
	items := []json.RawMessage{
		json.RawMessage(`{"_id":"a1"}`),
		json.RawMessage(`{"title":"no id"}`),
		json.RawMessage(`{"_id":"a2"}`),
	}
	tags = domain.DeriveTags("lessons", items)
	if len(tags) != 3 {
		t.Fatalf("expected two item tags plus the collection tag, got %v", tags)
	}
}

func TestErrorFromResponseCarriesServerMessage(t *testing.T) {
	t.Parallel()
	err := domain.ErrorFromResponse(401, []byte(`{"success":false,"message":"token expired"}`))
	reqErr, ok := err.(*domain.RequestError)
	if !ok {
		t.Fatalf("expected RequestError, got %T", err)
	}
	if reqErr.StatusCode != 401 || reqErr.Message != "token expired" {
		t.Fatalf("unexpected error: %+v", reqErr)
	}

	bare := domain.ErrorFromResponse(500, []byte("boom"))
	if bare.Error() != "request failed with status 500" {
		t.Fatalf("unexpected bare error: %v", bare)
	}
}
