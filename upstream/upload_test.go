package upstream

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestUpload(t *testing.T) {
	var gotField, gotFilename, gotContent string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		file, header, err := r.FormFile("avatar")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer file.Close()

		content, _ := io.ReadAll(file)
		gotField = "avatar"
		gotFilename = header.Filename
		gotContent = string(content)
		w.Write([]byte(`{"message":"uploaded","avatar_url":"/uploads/me.png"}`))
	})

	payload := "fake png bytes"
	var lastSent, lastTotal int64
	progress := func(sent, total int64) {
		lastSent, lastTotal = sent, total
	}

	var out struct {
		AvatarURL string `json:"avatar_url"`
	}
	err := client.Upload(context.Background(), Scope{Token: "tok"}, "/users/avatar",
		"avatar", "me.png", strings.NewReader(payload), int64(len(payload)), progress, &out)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if gotField != "avatar" || gotFilename != "me.png" {
		t.Errorf("received %s/%s", gotField, gotFilename)
	}
	if gotContent != payload {
		t.Errorf("content = %q", gotContent)
	}
	if out.AvatarURL != "/uploads/me.png" {
		t.Errorf("avatar_url = %q", out.AvatarURL)
	}
	if lastSent != int64(len(payload)) || lastTotal != int64(len(payload)) {
		t.Errorf("progress ended at %d/%d, want %d/%d", lastSent, lastTotal, len(payload), len(payload))
	}
}

func TestUpload_UpstreamRejects(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"message":"file too large"}`))
	})

	err := client.Upload(context.Background(), Scope{Token: "tok"}, "/users/avatar",
		"avatar", "huge.png", strings.NewReader("data"), 4, nil, nil)
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", apiErr.Status)
	}
	if apiErr.Message != "file too large" {
		t.Errorf("message = %q", apiErr.Message)
	}
}
