package model

import (
	"testing"
)

func TestAccountIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		role string
		want bool
	}{
		{
			name: "admin role",
			role: RoleAdmin,
			want: true,
		},
		{
			name: "user role",
			role: RoleUser,
			want: false,
		},
		{
			name: "empty role",
			role: "",
			want: false,
		},
		{
			name: "Admin uppercase",
			role: "Admin",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Account{Role: tt.role}
			if got := a.IsAdmin(); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccountSanitized(t *testing.T) {
	a := Account{ID: "u1", Email: "jo@x.com", PasswordHash: "$argon2id$..."}
	s := a.Sanitized()
	if s.PasswordHash != "" {
		t.Errorf("Sanitized() kept credential hash %q", s.PasswordHash)
	}
	if a.PasswordHash == "" {
		t.Error("Sanitized() mutated the receiver")
	}
	if s.ID != a.ID || s.Email != a.Email {
		t.Error("Sanitized() changed non-credential fields")
	}
}
