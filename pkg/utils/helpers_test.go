package utils

import "testing"

func TestRandomHexLength(t *testing.T) {
	if got := RandomHex(3); len(got) != 6 {
		t.Fatalf("expected 6 characters, got %q", got)
	}
}

func TestRoomTokenURLSafe(t *testing.T) {
	token := RoomToken()
	if len(token) != 6 {
		t.Fatalf("expected 6 characters, got %q", token)
	}
	for _, r := range token {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("unexpected character %q in token %q", r, token)
		}
	}
}
