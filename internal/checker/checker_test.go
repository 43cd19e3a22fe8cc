package checker

import (
	"testing"
	"time"

	"github.com/rawblock/decipher-engine/pkg/models"
)

func TestRegexChecker(t *testing.T) {
	c, err := NewRegexChecker(`^\d{3}-\d{4}$`)
	if err != nil {
		t.Fatalf("NewRegexChecker: %v", err)
	}
	if !c.CheckText("555-1234").IsIdentified {
		t.Error("expected match")
	}
	if c.CheckText("not a phone number").IsIdentified {
		t.Error("expected no match")
	}
}

func TestRegexCheckerInvalidPattern(t *testing.T) {
	if _, err := NewRegexChecker("("); err == nil {
		t.Fatal("expected error for unbalanced pattern")
	}
}

func TestPatternCheckerRecognizesMD5(t *testing.T) {
	c := NewPatternChecker()
	res := c.CheckText("5d41402abc4b2a76b9719d911017c592")
	if !res.IsIdentified {
		t.Fatal("expected MD5 to be recognized")
	}
}

func TestPatternCheckerRejectsPlainText(t *testing.T) {
	c := NewPatternChecker()
	if c.CheckText("just some words").IsIdentified {
		t.Error("expected no match for plain prose")
	}
}

func TestPasswordChecker(t *testing.T) {
	c := NewPasswordChecker()
	if !c.CheckText("Password").IsIdentified {
		t.Error("expected case-insensitive match")
	}
	if c.CheckText("correct horse battery staple").IsIdentified {
		t.Error("expected no match")
	}
}

type stubMembership map[string]bool

func (m stubMembership) Contains(word string) bool { return m[word] }

func TestWordlistChecker(t *testing.T) {
	c := NewWordlistChecker(stubMembership{"flag": true})
	if !c.CheckText("flag").IsIdentified {
		t.Error("expected membership hit")
	}
	if c.CheckText("notaword").IsIdentified {
		t.Error("expected no hit")
	}
}

func TestEnglishCheckerRatio(t *testing.T) {
	c := NewEnglishChecker(SensitivityMedium)
	if !c.CheckText("the people have the time and the water").IsIdentified {
		t.Error("expected prose to be recognized")
	}
	if c.CheckText("xqzvjk plmrt bzvnq").IsIdentified {
		t.Error("expected gibberish to be rejected")
	}
}

func TestAthenaReturnsFirstPositive(t *testing.T) {
	a := NewAthena(NewPatternChecker(), NewPasswordChecker())
	res := a.CheckText("password")
	if !res.IsIdentified || res.CheckerName != "Common Password Checker" {
		t.Errorf("expected password checker to win, got %+v", res)
	}
}

func TestWaitAthenaAccumulatesUntilDeadline(t *testing.T) {
	wa := NewWaitAthena(time.Now().Add(50*time.Millisecond), NewPasswordChecker())
	wa.CheckText("password")
	wa.CheckText("admin")
	if len(wa.Results()) != 2 {
		t.Fatalf("expected 2 accumulated hits, got %d", len(wa.Results()))
	}
	if wa.Expired(time.Now()) {
		t.Error("should not be expired yet")
	}
	if !wa.Expired(time.Now().Add(100 * time.Millisecond)) {
		t.Error("should be expired after deadline")
	}
}

type stubConfirmer struct{ accept bool }

func (s stubConfirmer) Confirm(candidate models.CheckerResult) bool { return s.accept }

func TestHumanCheckerGatesPositives(t *testing.T) {
	inner := NewPasswordChecker()

	h := NewHumanChecker(inner, stubConfirmer{accept: false})
	if h.CheckText("password").IsIdentified {
		t.Error("expected rejection to suppress identification")
	}

	h2 := NewHumanChecker(inner, stubConfirmer{accept: true})
	if !h2.CheckText("password").IsIdentified {
		t.Error("expected acceptance to pass through identification")
	}
}
