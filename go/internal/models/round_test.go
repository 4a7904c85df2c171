package models

import "testing"

func TestRoundNext(t *testing.T) {
	tests := []struct {
		round  Round
		next   Round
		wantOK bool
	}{
		{round: RoundEasy, next: RoundModerate, wantOK: true},
		{round: RoundModerate, next: RoundHard, wantOK: true},
		{round: RoundHard, next: RoundStarReveal, wantOK: true},
		{round: RoundStarReveal, wantOK: false},
		{round: Round("bogus"), wantOK: false},
	}

	for _, tt := range tests {
		next, ok := tt.round.Next()
		if ok != tt.wantOK {
			t.Errorf("Round(%q).Next() ok = %t, want %t", tt.round, ok, tt.wantOK)
		}
		if ok && next != tt.next {
			t.Errorf("Round(%q).Next() = %q, want %q", tt.round, next, tt.next)
		}
	}
}

func TestParseRound(t *testing.T) {
	for _, r := range Rounds() {
		got, err := ParseRound(string(r))
		if err != nil || got != r {
			t.Errorf("ParseRound(%q) = %q, %v", r, got, err)
		}
	}
	if _, err := ParseRound("easy"); err == nil {
		t.Error("ParseRound is case sensitive, lowercase should fail")
	}
}

func TestDefaultPointsTable(t *testing.T) {
	table := DefaultPointsTable()
	want := map[Round]int{
		RoundEasy:       100,
		RoundModerate:   150,
		RoundHard:       200,
		RoundStarReveal: 300,
	}
	for r, points := range want {
		if got := table.Points(r); got != points {
			t.Errorf("Points(%q) = %d, want %d", r, got, points)
		}
	}
	if got := table.Points(Round("bogus")); got != 0 {
		t.Errorf("Points(bogus) = %d, want 0", got)
	}
}

func TestCanonicalAnswer(t *testing.T) {
	opt := func(s string) *string { return &s }

	tests := []struct {
		name string
		q    Question
		want string
	}{
		{
			name: "free text answer wins",
			q:    Question{AnswerText: "Paris", CorrectOption: opt("A"), OptionA: opt("London")},
			want: "Paris",
		},
		{
			name: "correct option text",
			q:    Question{OptionA: opt("London"), OptionB: opt("Paris"), CorrectOption: opt("B")},
			want: "Paris",
		},
		{
			name: "no answer at all",
			q:    Question{},
			want: "",
		},
		{
			name: "correct option without option text",
			q:    Question{CorrectOption: opt("C")},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.CanonicalAnswer(); got != tt.want {
				t.Errorf("CanonicalAnswer() = %q, want %q", got, tt.want)
			}
		})
	}
}
