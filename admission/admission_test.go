package admission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/venuzlabs/feedkit/core"
)

func goodCandidate(now time.Time) *core.Candidate {
	return &core.Candidate{
		Title:       "Noche Electrónica en Mandala",
		Description: "DJ set internacional toda la noche, ambiente increíble en la Zona Romántica con terraza al mar.",
		Category:    "club",
		Coords:      &core.GeoPoint{Lat: 20.605, Lng: -105.235},
		ImageURL:    "https://cdn.example.com/mandala.jpg",
		SourceSite:  "googleplaces",
		ScrapedAt:   now.Add(-2 * time.Hour),
		Language:    "es",
	}
}

func TestIsSpam(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        bool
	}{
		{name: "money scam phrase", title: "GANA PESOS facil", description: "trabajo desde casa", want: true},
		{name: "free money phrase", title: "gratis mucho dinero", description: "", want: true},
		{name: "url shortener", title: "promo", description: "entra a bit.ly/xyz", want: true},
		{name: "crypto promo", title: "cryptocurrency giveaway", description: "", want: true},
		{name: "whatsapp with phone", title: "contacta", description: "whatsapp 5215512345678", want: true},
		{name: "click bait", title: "CLIC AQUÍ ahora", description: "", want: true},
		{
			name:        "garbled long tokens",
			title:       "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx yyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyy",
			description: "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz normal",
			want:        true,
		},
		{name: "clean event", title: "Noche de salsa", description: "Banda en vivo desde las 9pm", want: false},
		{name: "english clean", title: "Rooftop sunset session", description: "Live music and cocktails", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSpam(tt.title, tt.description); got != tt.want {
				t.Errorf("IsSpam(%q, %q) = %v, want %v", tt.title, tt.description, got, tt.want)
			}
		})
	}
}

func TestCheckRejectsSpam(t *testing.T) {
	f := &Filter{}
	v := f.Check(context.Background(), &core.Candidate{
		Title:       "GRATIS DINERO ya",
		Description: "bit.ly/estafa",
	}, nil)

	if v.Approved {
		t.Fatal("spam candidate should be rejected")
	}
	if v.Reason != core.ReasonSpamDetected {
		t.Errorf("reason = %v, want %v", v.Reason, core.ReasonSpamDetected)
	}
}

func TestCheckApprovesGoodCandidate(t *testing.T) {
	now := time.Now()
	f := &Filter{Now: func() time.Time { return now }}

	v := f.Check(context.Background(), goodCandidate(now), nil)
	if !v.Approved {
		t.Fatalf("good candidate rejected: %v", v.Reason)
	}
	if v.Item == nil {
		t.Fatal("approved verdict should carry item")
	}
	if v.Item.ID == "" {
		t.Error("approved item should have an id")
	}
	if v.Item.QualityScore < MinQualityScore || v.Item.QualityScore > 100 {
		t.Errorf("quality score %d out of range", v.Item.QualityScore)
	}
}

func TestFindDuplicate(t *testing.T) {
	ref := core.NewItem("ref-1")
	ref.Title = "Noche Electrónica en Mandala"
	ref.Coords = &core.GeoPoint{Lat: 20.605, Lng: -105.235}

	noCoords := core.NewItem("ref-2")
	noCoords.Title = "Sunset Rooftop Session Vallarta"

	tests := []struct {
		name string
		cand *core.Candidate
		refs []*core.Item
		want core.RejectReason
	}{
		{
			name: "same title same location",
			cand: &core.Candidate{
				Title:  "Noche Electrónica en Mandala!",
				Coords: &core.GeoPoint{Lat: 20.6052, Lng: -105.2351},
			},
			refs: []*core.Item{ref},
			want: core.ReasonDuplicateLocation,
		},
		{
			name: "same title far away is not location duplicate",
			cand: &core.Candidate{
				Title:  "Noche Electrónica en Mandala Cancún edición playa",
				Coords: &core.GeoPoint{Lat: 21.16, Lng: -86.85},
			},
			refs: []*core.Item{ref},
			want: "",
		},
		{
			name: "near identical title without coordinates",
			cand: &core.Candidate{Title: "Sunset Rooftop Session Vallarta"},
			refs: []*core.Item{noCoords},
			want: core.ReasonDuplicateTitle,
		},
		{
			name: "different title same location",
			cand: &core.Candidate{
				Title:  "Campeonato de fútbol local",
				Coords: &core.GeoPoint{Lat: 20.605, Lng: -105.235},
			},
			refs: []*core.Item{ref},
			want: "",
		},
		{name: "empty reference set", cand: &core.Candidate{Title: "Anything"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, _ := findDuplicate(tt.cand, tt.refs)
			if reason != tt.want {
				t.Errorf("findDuplicate reason = %q, want %q", reason, tt.want)
			}
		})
	}
}

func TestCheckIsRepeatable(t *testing.T) {
	// 判定无副作用：同一候选重复判定结论一致
	now := time.Now()
	f := &Filter{Now: func() time.Time { return now }}
	cand := goodCandidate(now)

	v1 := f.Check(context.Background(), cand, nil)
	v2 := f.Check(context.Background(), cand, nil)
	if v1.Approved != v2.Approved {
		t.Error("repeated checks should agree")
	}
	if v1.Item.QualityScore != v2.Item.QualityScore {
		t.Errorf("quality scores differ: %d vs %d", v1.Item.QualityScore, v2.Item.QualityScore)
	}
}

type fakeChecker struct {
	rate      float64
	corrected string
	err       error
}

func (c *fakeChecker) CheckQuality(_ context.Context, text, _ string) (*core.QualityResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	corrected := c.corrected
	if corrected == "" {
		corrected = text
	}
	return &core.QualityResult{ErrorRate: c.rate, CorrectedText: corrected}, nil
}

func TestCheckTextFailOpen(t *testing.T) {
	now := time.Now()
	f := &Filter{
		Checker: &fakeChecker{err: errors.New("service down")},
		Now:     func() time.Time { return now },
	}

	v := f.Check(context.Background(), goodCandidate(now), nil)
	if !v.Approved {
		t.Fatalf("checker failure must not block admission, got %v", v.Reason)
	}
}

func TestCheckRejectsHighErrorRate(t *testing.T) {
	now := time.Now()
	f := &Filter{
		Checker: &fakeChecker{rate: 0.5},
		Now:     func() time.Time { return now },
	}

	v := f.Check(context.Background(), goodCandidate(now), nil)
	if v.Approved {
		t.Fatal("high error rate should be rejected")
	}
	if v.Reason != core.ReasonPoorTextQuality {
		t.Errorf("reason = %v, want %v", v.Reason, core.ReasonPoorTextQuality)
	}
}

func TestCorrectionTolerance(t *testing.T) {
	now := time.Now()
	cand := goodCandidate(now)
	full := cand.Title + " " + cand.Description

	tests := []struct {
		name      string
		corrected string
		wantKept  bool
	}{
		{name: "small fix kept", corrected: full + " ok", wantKept: true},
		{
			name:      "rewritten text discarded",
			corrected: full + " este texto extra es demasiado largo para ser una simple corrección ortográfica",
			wantKept:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Filter{
				Checker: &fakeChecker{rate: 0.01, corrected: tt.corrected},
				Now:     func() time.Time { return now },
			}
			v := f.Check(context.Background(), cand, nil)
			if !v.Approved {
				t.Fatalf("unexpected rejection: %v", v.Reason)
			}
			if kept := v.CorrectedText != ""; kept != tt.wantKept {
				t.Errorf("corrected kept = %v, want %v", kept, tt.wantKept)
			}
		})
	}
}

func TestQualityScore(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		cand *core.Candidate
		text int
		want int
	}{
		{
			name: "fully complete fresh trusted permanent",
			cand: &core.Candidate{
				Title:       "Long enough title",
				Description: string(make([]byte, 250)),
				ImageURL:    "https://x/y.jpg",
				Coords:      &core.GeoPoint{Lat: 1, Lng: 1},
				SourceSite:  "ticketmaster",
				ScrapedAt:   now,
				IsPermanent: true,
			},
			text: 25,
			// 完整度 30（封顶）+ 文本 25 + 新鲜 20 + 可信 10 + 常驻 10 = 95
			want: 95,
		},
		{
			name: "bare minimum stale unknown source",
			cand: &core.Candidate{
				Title:      "x",
				SourceSite: "random",
				ScrapedAt:  now.Add(-60 * 24 * time.Hour),
			},
			text: 15,
			// 完整度 0 + 文本 15 + 新鲜 5 + 来源 5 = 25
			want: 25,
		},
		{
			name: "week old eventbrite",
			cand: &core.Candidate{
				Title:       "Fiesta de barrio",
				Description: "Una descripción suficientemente larga para sumar puntos.",
				SourceSite:  "eventbrite",
				ScrapedAt:   now.Add(-3 * 24 * time.Hour),
			},
			text: 20,
			// 完整度 20 + 文本 20 + 新鲜 15 + 可信 10 = 65
			want: 65,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := qualityScore(tt.cand, tt.text, now)
			if got != tt.want {
				t.Errorf("qualityScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQualityScoreBounds(t *testing.T) {
	now := time.Now()
	got := qualityScore(&core.Candidate{}, 0, now)
	if got < 0 || got > 100 {
		t.Errorf("score %d out of [0,100]", got)
	}
}

func TestCheckScoreFloorBoundary(t *testing.T) {
	// 最差可达组合：完整度 0 + 文本 15 + 新鲜 5 + 来源 5 = 25，恰在准入线上
	now := time.Now()
	f := &Filter{
		Checker: &fakeChecker{rate: 0.2},
		Now:     func() time.Time { return now },
	}

	v := f.Check(context.Background(), &core.Candidate{
		Title:       "corta",
		Description: "texto con bastantes errores", // 超过 minCheckLen，触发外部检查
		SourceSite:  "random",
		ScrapedAt:   now.Add(-90 * 24 * time.Hour),
	}, nil)

	if !v.Approved {
		t.Fatalf("boundary score should pass, got %v", v.Reason)
	}
	if v.Item.QualityScore != MinQualityScore {
		t.Errorf("quality score = %d, want %d", v.Item.QualityScore, MinQualityScore)
	}
}
