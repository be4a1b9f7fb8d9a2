package llm

import "testing"

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{
			name: "french job offer",
			text: "Nous recherchons un candidat avec de l'expérience pour rejoindre notre équipe. Le poste demande des compétences en développement.",
			want: LanguageFrench,
		},
		{
			name: "english job offer",
			text: "We are looking for a candidate with experience to join our team. The position requires strong skills and a growth profile in development.",
			want: LanguageEnglish,
		},
		{
			name: "dutch job offer",
			text: "Wij zoeken een kandidaat met ervaring voor deze functie. Het bedrijf vraagt goede vaardigheden en een sterk profiel in ontwikkeling.",
			want: LanguageDutch,
		},
		{
			name: "empty defaults to french",
			text: "",
			want: LanguageFrench,
		},
		{
			name: "tie defaults to french",
			text: "mission team équipe company entreprise",
			want: LanguageFrench,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectLanguage(tc.text); got != tc.want {
				t.Fatalf("DetectLanguage(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}
