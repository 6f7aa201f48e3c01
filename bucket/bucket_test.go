package bucket

import (
	"testing"

	"github.com/venuzlabs/feedkit/core"
)

func TestClassify(t *testing.T) {
	cls := MustClassifier(nil)

	tests := []struct {
		name     string
		category string
		source   string
		nsfw     bool
		want     core.Bucket
	}{
		{name: "escort category", category: "escort", want: core.BucketAdult},
		{name: "webcam category", category: "webcam", want: core.BucketAdult},
		{name: "reddit source", category: "club", source: "reddit", want: core.BucketAdult},
		{name: "nsfw flag wins", category: "bar", nsfw: true, want: core.BucketAdult},
		{name: "event category", category: "event", want: core.BucketEvent},
		{name: "ticketmaster source", category: "", source: "ticketmaster_mx", want: core.BucketEvent},
		{name: "eventbrite source", source: "api.eventbrite.com", want: core.BucketEvent},
		{name: "club category", category: "club", want: core.BucketVenue},
		{name: "bar category", category: "bar", want: core.BucketVenue},
		{name: "restaurant category", category: "restaurant", want: core.BucketVenue},
		{name: "googleplaces source", source: "googleplaces", want: core.BucketVenue},
		{name: "sports category", category: "sports", want: core.BucketSports},
		{name: "thesportsdb source", source: "thesportsdb.com", want: core.BucketSports},
		{name: "unknown defaults to venue", category: "mystery", source: "nowhere", want: core.BucketVenue},
		{name: "case insensitive", category: "ESCORT", want: core.BucketAdult},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cls.Classify(tt.category, tt.source, tt.nsfw)
			if got != tt.want {
				t.Errorf("Classify(%q, %q, %v) = %v, want %v", tt.category, tt.source, tt.nsfw, got, tt.want)
			}
		})
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	// adult 规则在 event 之前：nsfw 的 event 归入 adult
	cls := MustClassifier(nil)
	if got := cls.Classify("event", "", true); got != core.BucketAdult {
		t.Errorf("nsfw event should classify as adult, got %v", got)
	}
}

func TestClassifyItemAndCandidate(t *testing.T) {
	cls := MustClassifier(nil)

	it := core.NewItem("i1")
	it.Category = "event"
	if got := cls.ClassifyItem(it); got != core.BucketEvent {
		t.Errorf("ClassifyItem = %v, want event", got)
	}
	if got := cls.ClassifyItem(nil); got != core.BucketVenue {
		t.Errorf("ClassifyItem(nil) = %v, want venue", got)
	}

	cand := &core.Candidate{Category: "sports"}
	if got := cls.ClassifyCandidate(cand); got != core.BucketSports {
		t.Errorf("ClassifyCandidate = %v, want sports", got)
	}
}

func TestNewClassifierInvalidExpr(t *testing.T) {
	_, err := NewClassifier([]Rule{{Expr: "category ==", Bucket: core.BucketVenue}})
	if err == nil {
		t.Error("expected error for invalid rule expression")
	}
}
