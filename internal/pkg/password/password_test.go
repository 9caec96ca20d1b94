package password

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "Passw0rd", true},
		{"valid long", "Aa1aaaaaaaaaaaaa", true},
		{"too short", "Aa1", false},
		{"no upper", "passw0rd", false},
		{"no lower", "PASSW0RD", false},
		{"no digit", "Password", false},
		{"punctuation", "Passw0rd!", false},
		{"space", "Passw0rd ", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.password)
			if tt.ok && err != nil {
				t.Errorf("Validate(%q) = %v, want nil", tt.password, err)
			}
			if !tt.ok && !errors.Is(err, ErrPolicy) {
				t.Errorf("Validate(%q) = %v, want ErrPolicy", tt.password, err)
			}
		})
	}
}

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Passw0rd")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "Passw0rd" {
		t.Fatal("hash must not be the plain text")
	}

	if !Verify(hash, "Passw0rd") {
		t.Error("correct password must verify")
	}
	if Verify(hash, "Passw0re") {
		t.Error("wrong password must not verify")
	}
	if Verify("not a hash", "Passw0rd") {
		t.Error("bogus hash must not verify")
	}
}
