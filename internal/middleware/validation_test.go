package middleware

import "testing"

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantSlug string
		wantErr  bool
	}{
		{"simple", "nebula-chat", "nebula-chat", false},
		{"single word", "prismshot", "prismshot", false},
		{"digits", "tool-42", "tool-42", false},
		{"uppercase normalized", "Nebula-Chat", "nebula-chat", false},
		{"trims whitespace", "  alpha  ", "alpha", false},
		{"empty", "", "", true},
		{"leading dash", "-alpha", "", true},
		{"double dash", "a--b", "", true},
		{"spaces inside", "nebula chat", "", true},
		{"sql injection", "a'; DROP--", "", true},
		{"unicode", "café", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateSlug(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantSlug {
				t.Errorf("got %q, want %q", got, tt.wantSlug)
			}
		})
	}
}

func TestValidateSlug_Length(t *testing.T) {
	long := make([]byte, MaxSlugLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, errMsg := ValidateSlug(string(long)); errMsg == "" {
		t.Error("expected error for over-length slug")
	}
	if _, errMsg := ValidateSlug(string(long[:MaxSlugLen])); errMsg != "" {
		t.Errorf("slug at exactly the limit should pass: %s", errMsg)
	}
}

func TestValidateVoterID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"hex hash", "a3f2b4c1d0", "a3f2b4c1d0", false},
		{"uppercase normalized", "A3F2B4", "a3f2b4", false},
		{"empty", "", "", true},
		{"non-hex", "voter-one", "", true},
		{"too long", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateVoterID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateUserAgent(t *testing.T) {
	if got := ValidateUserAgent("  Mozilla/5.0  "); got != "Mozilla/5.0" {
		t.Errorf("got %q, want trimmed", got)
	}
	long := make([]byte, MaxUserAgentLen+40)
	for i := range long {
		long[i] = 'x'
	}
	if got := ValidateUserAgent(string(long)); len(got) != MaxUserAgentLen {
		t.Errorf("len = %d, want truncated to %d", len(got), MaxUserAgentLen)
	}
}
