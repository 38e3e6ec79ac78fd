package instrument

import "testing"

func TestMaskerValue(t *testing.T) {
	m := NewMasker("Link")

	got := m.Value(map[string]any{
		"id":   "alice",
		"link": "http://x",
		"nested": []any{
			map[string]any{"MASTER_KEY": "k", "size": 256.0},
		},
	}).(map[string]any)

	if got["id"] != "alice" || got["link"] != Masked {
		t.Fatalf("unexpected: %v", got)
	}
	inner := got["nested"].([]any)[0].(map[string]any)
	if inner["MASTER_KEY"] != Masked || inner["size"] != 256.0 {
		t.Fatalf("unexpected nested: %v", inner)
	}

	headers := m.Value(map[string]string{"stamp": "s", "type": "app"}).(map[string]string)
	if headers["stamp"] != Masked || headers["type"] != "app" {
		t.Fatalf("unexpected: %v", headers)
	}
}

func TestMaskerJSON(t *testing.T) {
	m := NewMasker()

	if _, ok := m.JSON([]byte("plain")); ok {
		t.Fatal("plain text is not json")
	}
	if _, ok := m.JSON([]byte("{broken")); ok {
		t.Fatal("broken json accepted")
	}

	v, ok := m.JSON([]byte(`[{"password":"1"}]`))
	if !ok || v.([]any)[0].(map[string]any)["password"] != Masked {
		t.Fatalf("unexpected: %v %v", v, ok)
	}
}
