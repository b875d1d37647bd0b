package controller

import (
	"net/http/httptest"
	"strings"
	"testing"

	"secaware_backend/internal/model"

	"github.com/gin-gonic/gin"
)

func bindJSON(t *testing.T, body string, out interface{}) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")
	return ctx.ShouldBindJSON(out)
}

func TestUpdateScoreRequestBinding(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		want    int
	}{
		{"positive delta", `{"delta": 20}`, false, 20},
		{"negative delta", `{"delta": -10}`, false, -10},
		{"zero delta", `{"delta": 0}`, false, 0},
		{"missing delta", `{}`, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateScoreRequest
			err := bindJSON(t, tt.body, &req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected binding error")
				}
				return
			}
			if err != nil {
				t.Fatalf("bind: %v", err)
			}
			if req.Delta == nil || *req.Delta != tt.want {
				t.Errorf("Delta = %v, want %d", req.Delta, tt.want)
			}
		})
	}
}

func TestAddMessageRequestBinding(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"user role", `{"role": "user", "content": "hi"}`, false},
		{"assistant role", `{"role": "assistant", "content": "hello"}`, false},
		{"system role rejected", `{"role": "system", "content": "x"}`, true},
		{"unknown role rejected", `{"role": "moderator", "content": "x"}`, true},
		{"empty content rejected", `{"role": "user", "content": ""}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req AddMessageRequest
			err := bindJSON(t, tt.body, &req)
			if tt.wantErr && err == nil {
				t.Fatal("expected binding error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("bind: %v", err)
			}
			if !tt.wantErr && req.Role != model.RoleUser && req.Role != model.RoleAssistant {
				t.Errorf("unexpected role %q", req.Role)
			}
		})
	}
}

func TestAnswerRequestBindingAllowsFalse(t *testing.T) {
	var req AnswerRequest
	if err := bindJSON(t, `{"verdict": false}`, &req); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if req.Verdict == nil || *req.Verdict != false {
		t.Errorf("Verdict = %v, want false", req.Verdict)
	}
}
