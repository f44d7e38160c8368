package password

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Abcdef", true},
		{"abcdef", false},
		{"Abc", false},
		{"abc", false},
		{"ABCDEFG", true},
		{"12345Z", true},
		{"", false},
		{"Ébcdef", false},
		{"éééééZ", true},
	}

	for _, tt := range tests {
		if got := ValidatePassword(tt.password); got != tt.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestHashAndVerify(t *testing.T) {
	hash, err := HashWithCost("Abcdef", 4)
	if err != nil {
		t.Fatalf("HashWithCost failed: %v", err)
	}
	if hash == "Abcdef" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !Verify("Abcdef", hash) {
		t.Error("expected correct password to verify")
	}
	if Verify("abcdef", hash) {
		t.Error("expected wrong password to be rejected")
	}
}
