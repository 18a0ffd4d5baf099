package matcher

import (
	"testing"

	"github.com/trilhaufpb/caixinha/internal/models"
)

func roster(names ...string) []models.Member {
	members := make([]models.Member, len(names))
	for i, n := range names {
		members[i] = models.Member{Name: n}
	}
	return members
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		payer    string
		members  []models.Member
		want     string
		wantMiss bool
	}{
		{
			name:    "exact match",
			payer:   "Maria Silva",
			members: roster("Maria Silva", "Jose Santos"),
			want:    "Maria Silva",
		},
		{
			name:    "case and whitespace normalized",
			payer:   "  MARIA SILVA  ",
			members: roster("Maria Silva"),
			want:    "Maria Silva",
		},
		{
			name:    "payer with suffix falls back to substring",
			payer:   "Jose Silva Junior",
			members: roster("Jose Silva"),
			want:    "Jose Silva",
		},
		{
			name:    "payer missing middle name",
			payer:   "Ana Souza",
			members: roster("Maria Silva", "Ana Clara Souza"),
			// "ana souza" is not a substring of "ana clara souza" so no match;
			// substring recovery only handles prefix/suffix truncation.
			wantMiss: true,
		},
		{
			name:    "truncated payer name",
			payer:   "Ana Clara",
			members: roster("Maria Silva", "Ana Clara Souza"),
			want:    "Ana Clara Souza",
		},
		{
			name:    "exact wins over earlier substring candidate",
			payer:   "Jose Silva",
			members: roster("Jose Silva Junior", "Jose Silva"),
			want:    "Jose Silva",
		},
		{
			name:    "first substring match in roster order wins",
			payer:   "Silva",
			members: roster("Maria Silva", "Jose Silva"),
			want:    "Maria Silva",
		},
		{
			name:     "no candidate",
			payer:    "Carlos Pereira",
			members:  roster("Maria Silva", "Jose Santos"),
			wantMiss: true,
		},
		{
			name:     "empty payer never matches",
			payer:    "",
			members:  roster("Maria Silva"),
			wantMiss: true,
		},
		{
			name:     "whitespace-only payer never matches",
			payer:    "   ",
			members:  roster("Maria Silva"),
			wantMiss: true,
		},
		{
			name:     "empty roster",
			payer:    "Maria Silva",
			members:  nil,
			wantMiss: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member, ok := Resolve(tt.payer, tt.members)
			if tt.wantMiss {
				if ok {
					t.Fatalf("Resolve(%q) = %q, want no match", tt.payer, member.Name)
				}
				return
			}
			if !ok {
				t.Fatalf("Resolve(%q) found no match, want %q", tt.payer, tt.want)
			}
			if member.Name != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.payer, member.Name, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Maria SILVA "); got != "maria silva" {
		t.Errorf("Normalize = %q, want %q", got, "maria silva")
	}
}
