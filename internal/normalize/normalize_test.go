package normalize

import "testing"

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "dotted abbreviation",
			in:   "A. S. SAFRAN BORDEAUX",
			want: "safran bordeaux",
		},
		{
			name: "undotted abbreviation",
			in:   "AS Safran Bordeaux",
			want: "safran bordeaux",
		},
		{
			name: "accents stripped",
			in:   "Étoile Sportive de Vélizy",
			want: "velizy",
		},
		{
			name: "structure words dropped",
			in:   "Football Club de Nantes",
			want: "nantes",
		},
		{
			name: "all stop tokens keeps undiscriminated form",
			in:   "Football Club",
			want: "football club",
		},
		{
			name: "punctuation collapsed",
			in:   "U.S. Saint-Malo",
			want: "saint malo",
		},
		{
			name: "empty",
			in:   "   ",
			want: "",
		},
		{
			name: "digits kept",
			in:   "FC Girondins 33",
			want: "girondins 33",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.in); got != tt.want {
				t.Errorf("Key(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeyIdempotent(t *testing.T) {
	inputs := []string{
		"A. S. SAFRAN BORDEAUX",
		"Étoile Sportive de Vélizy",
		"Football Club",
		"U.S. Saint-Malo",
	}
	for _, in := range inputs {
		once := Key(in)
		if twice := Key(once); twice != once {
			t.Errorf("Key not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestKeyVariantsAgree(t *testing.T) {
	variants := []string{
		"A. S. SAFRAN BORDEAUX",
		"AS Safran Bordeaux",
		"as safran bordeaux",
		"Association Sportive Safran Bordeaux",
	}
	want := Key(variants[0])
	for _, v := range variants[1:] {
		if got := Key(v); got != want {
			t.Errorf("Key(%q) = %q, want %q", v, got, want)
		}
	}
}
