package patch

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtract_SinglePatch(t *testing.T) {
	response := `<patch>{"file":"a.md","type":"insert","line":1,"content":"Hi"}</patch>`

	res, err := Extract(response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Patches) != 1 {
		t.Fatalf("got %d patches, want 1", len(res.Patches))
	}

	p := res.Patches[0]
	if p.File != "a.md" || p.Kind != KindInsert || p.Line != 1 {
		t.Errorf("patch = %+v", p)
	}
	if p.Content == nil || *p.Content != "Hi" {
		t.Errorf("content = %v, want 'Hi'", p.Content)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestExtract_MultiPatch(t *testing.T) {
	response := `<patches>[
		{"file":"chapter2.md","type":"replace","target":{"startLine":45,"endLine":63},"replacement":"New content"},
		{"file":"chapter1.md","type":"insert","line":120,"content":"..."}
	]</patches>`

	res, err := Extract(response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Patches) != 2 {
		t.Fatalf("got %d patches, want 2", len(res.Patches))
	}
	if res.Patches[0].Kind != KindReplace || res.Patches[0].Target.StartLine != 45 {
		t.Errorf("first patch = %+v", res.Patches[0])
	}
	if res.Patches[1].Kind != KindInsert || res.Patches[1].Line != 120 {
		t.Errorf("second patch = %+v", res.Patches[1])
	}
}

func TestExtract_CaseInsensitiveTags(t *testing.T) {
	response := `<PATCH>{"file":"a.md","type":"delete","target":{"startLine":1,"endLine":2}}</PATCH>`

	res, err := Extract(response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Patches[0].Kind != KindDelete {
		t.Errorf("patch = %+v", res.Patches[0])
	}
}

func TestExtract_NoTags(t *testing.T) {
	_, err := Extract("Sure! Here is a summary of chapter two instead.")
	if err == nil {
		t.Fatal("expected error for conversational response")
	}
	if !IsConversational(err) {
		t.Errorf("want conversational classification, got %v", err)
	}
}

func TestExtract_BadJSON(t *testing.T) {
	_, err := Extract(`<patch>{not json}</patch>`)
	ee, ok := err.(*ExtractError)
	if !ok || ee.Kind != ErrBadJSON {
		t.Fatalf("want ErrBadJSON, got %v", err)
	}
	if IsConversational(err) {
		t.Error("malformed JSON must not be classified conversational")
	}
}

func TestExtract_MultiPatchNotArray(t *testing.T) {
	_, err := Extract(`<patches>{"file":"a.md"}</patches>`)
	ee, ok := err.(*ExtractError)
	if !ok || ee.Kind != ErrNotArray {
		t.Fatalf("want ErrNotArray, got %v", err)
	}
}

func TestExtract_ProseWarning(t *testing.T) {
	prose := strings.Repeat("Let me explain what I changed. ", 20)
	response := prose + `<patch>{"file":"a.md","type":"insert","line":1,"content":"x"}</patch>`

	res, err := Extract(response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("want one prose warning, got %v", res.Warnings)
	}

	// Short prose stays below the threshold.
	res, err = Extract("Done. " + `<patch>{"file":"a.md","type":"insert","line":1,"content":"x"}</patch>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	response := `some prose <patches>[{"file":"a.md","type":"insert","line":3,"content":"x"}]</patches>`

	first, err1 := Extract(response)
	second, err2 := Extract(response)
	if err1 != nil || err2 != nil {
		t.Fatalf("errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not idempotent: %+v vs %+v", first, second)
	}
}
