package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestUserEntity_ApplyPatch(t *testing.T) {
	base := UserEntity{
		Email:        "a@b.com",
		FirstName:    "A",
		LastName:     "B",
		Phone:        "+998900000000",
		Address:      "X",
		PasswordHash: "hash",
	}

	tests := []struct {
		name  string
		patch *UserPatch
		want  UserEntity
	}{
		{
			name:  "nil patch changes nothing",
			patch: nil,
			want:  base,
		},
		{
			name:  "empty patch changes nothing",
			patch: &UserPatch{},
			want:  base,
		},
		{
			name:  "phone only",
			patch: &UserPatch{Phone: strPtr("+111")},
			want: UserEntity{
				Email: "a@b.com", FirstName: "A", LastName: "B",
				Phone: "+111", Address: "X", PasswordHash: "hash",
			},
		},
		{
			name: "all fields",
			patch: &UserPatch{
				FirstName:    strPtr("C"),
				LastName:     strPtr("D"),
				Phone:        strPtr("+222"),
				Address:      strPtr("Y"),
				PasswordHash: strPtr("hash2"),
			},
			want: UserEntity{
				Email: "a@b.com", FirstName: "C", LastName: "D",
				Phone: "+222", Address: "Y", PasswordHash: "hash2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base
			got.ApplyPatch(tt.patch)
			if got != tt.want {
				t.Errorf("ApplyPatch() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUserPatch_IsEmpty(t *testing.T) {
	if !(&UserPatch{}).IsEmpty() {
		t.Error("empty patch reported as non-empty")
	}
	if (&UserPatch{Address: strPtr("Y")}).IsEmpty() {
		t.Error("non-empty patch reported as empty")
	}
}

func TestTrimmedValue(t *testing.T) {
	if _, ok := TrimmedValue(nil); ok {
		t.Error("nil field should not apply")
	}
	if _, ok := TrimmedValue(strPtr("   ")); ok {
		t.Error("blank field should not apply")
	}
	if v, ok := TrimmedValue(strPtr("  hello ")); !ok || v != "hello" {
		t.Errorf("TrimmedValue() = %q, %v; want %q, true", v, ok, "hello")
	}
}

// Serialized records must never expose the stored hash.
func TestUserEntity_JSONHidesPasswordHash(t *testing.T) {
	entity := UserEntity{
		Email:        "a@b.com",
		FirstName:    "A",
		PasswordHash: "very-secret-hash",
	}

	raw, err := json.Marshal(&entity)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "very-secret-hash") {
		t.Errorf("serialized entity leaks the password hash: %s", raw)
	}
	if strings.Contains(strings.ToLower(string(raw)), "passwordhash") {
		t.Errorf("serialized entity exposes a passwordHash key: %s", raw)
	}
}
