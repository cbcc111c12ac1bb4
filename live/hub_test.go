package live

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testHub() *Hub {
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go h.Run()
	return h
}

func register(t *testing.T, h *Hub, room string, buffer int) *Client {
	t.Helper()

	c := &Client{Hub: h, Send: make(chan []byte, buffer), Room: room}
	h.Register <- c
	waitRegistered(t, h, c)
	return c
}

// waitRegistered дожидается, пока Run положит клиента в комнату:
// отправка в Register возвращается раньше вставки в map.
func waitRegistered(t *testing.T, h *Hub, c *Client) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		h.mu.RLock()
		_, ok := h.rooms[c.Room][c]
		h.mu.RUnlock()
		if ok {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("client was not registered in time")
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()

	select {
	case raw := <-c.Send:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("unmarshal broadcast: %v", err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return Message{}
	}
}

func TestBroadcastToRoom(t *testing.T) {
	h := testHub()
	judge := register(t, h, HackathonRoom(3), 4)
	other := register(t, h, HackathonRoom(4), 4)

	h.BroadcastToRoom(HackathonRoom(3), Message{
		Type:    MessageEvaluation,
		Payload: map[string]int{"team_id": 7},
	})

	msg := receive(t, judge)
	if msg.Type != MessageEvaluation {
		t.Errorf("type = %q, want %q", msg.Type, MessageEvaluation)
	}
	if msg.RoomID != HackathonRoom(3) {
		t.Errorf("room = %q, want %q", msg.RoomID, HackathonRoom(3))
	}

	select {
	case raw := <-other.Send:
		t.Fatalf("client in another room received %s", raw)
	default:
	}
}

func TestBroadcastToRoom_EmptyRoomIsNoop(t *testing.T) {
	h := testHub()
	// Комнаты нет — просто ничего не происходит.
	h.BroadcastToRoom(UserRoom(1), Message{Type: MessageNotification})
}

func TestBroadcast_SlowClientDoesNotBlock(t *testing.T) {
	h := testHub()
	slow := register(t, h, UserRoom(10), 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Второе сообщение не влезает в буфер и отбрасывается.
		h.BroadcastToRoom(UserRoom(10), Message{Type: MessageNotification, Payload: 1})
		h.BroadcastToRoom(UserRoom(10), Message{Type: MessageNotification, Payload: 2})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full client buffer")
	}
	if got := len(slow.Send); got != 1 {
		t.Fatalf("buffered messages = %d, want 1", got)
	}
}

func TestUnregister_ClosesSendChannel(t *testing.T) {
	h := testHub()
	c := register(t, h, UserRoom(5), 4)

	h.Unregister <- c

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Fatal("expected closed channel, got a message")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed after unregister")
	}

	// Бродкаст в уже пустую комнату не паникует.
	h.BroadcastToRoom(UserRoom(5), Message{Type: MessageNotification})
}

func TestRoomNames(t *testing.T) {
	if UserRoom(7) != "user_7" {
		t.Errorf("UserRoom = %q", UserRoom(7))
	}
	if HackathonRoom(7) != "hackathon_7" {
		t.Errorf("HackathonRoom = %q", HackathonRoom(7))
	}
}
