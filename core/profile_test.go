package core

import (
	"math"
	"testing"
)

func TestNewPreferenceProfile(t *testing.T) {
	tests := []struct {
		name string
		mode SeedMode
		want PreferenceProfile
	}{
		{name: "default uniform", mode: SeedDefault, want: PreferenceProfile{Adult: 25, Event: 25, Venue: 25, Sports: 25}},
		{name: "adult landing", mode: SeedAdult, want: PreferenceProfile{Adult: 85, Event: 5, Venue: 5, Sports: 5}},
		{name: "events landing", mode: SeedEvents, want: PreferenceProfile{Adult: 5, Event: 50, Venue: 40, Sports: 5}},
		{name: "unknown mode falls back to uniform", mode: "weird", want: PreferenceProfile{Adult: 25, Event: 25, Venue: 25, Sports: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPreferenceProfile(tt.mode)
			if *got != tt.want {
				t.Errorf("NewPreferenceProfile(%q) = %+v, want %+v", tt.mode, *got, tt.want)
			}
		})
	}
}

func TestApplyEngagement(t *testing.T) {
	tests := []struct {
		name   string
		bucket Bucket
		want   PreferenceProfile
	}{
		{name: "adult engagement", bucket: BucketAdult, want: PreferenceProfile{Adult: 35, Event: 22, Venue: 25, Sports: 25}},
		{name: "event engagement", bucket: BucketEvent, want: PreferenceProfile{Adult: 20, Event: 35, Venue: 28, Sports: 25}},
		{name: "venue engagement", bucket: BucketVenue, want: PreferenceProfile{Adult: 25, Event: 28, Venue: 35, Sports: 25}},
		{name: "sports engagement", bucket: BucketSports, want: PreferenceProfile{Adult: 25, Event: 27, Venue: 27, Sports: 35}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPreferenceProfile(SeedDefault)
			p.ApplyEngagement(tt.bucket)
			if *p != tt.want {
				t.Errorf("after %s engagement: %+v, want %+v", tt.bucket, *p, tt.want)
			}
		})
	}
}

func TestApplyEngagementClamp(t *testing.T) {
	// 上界：反复互动同一桶不会超过 200
	p := NewPreferenceProfile(SeedDefault)
	for i := 0; i < 50; i++ {
		p.ApplyEngagement(BucketVenue)
	}
	if p.Venue != 200 {
		t.Errorf("venue = %d, want clamped to 200", p.Venue)
	}

	// 下界：被连带减分的桶不会跌破 1
	p = NewPreferenceProfile(SeedAdult) // Event = 5
	for i := 0; i < 10; i++ {
		p.ApplyEngagement(BucketAdult) // Event -3 each time
	}
	if p.Event != 1 {
		t.Errorf("event = %d, want clamped to 1", p.Event)
	}
}

func TestRatios(t *testing.T) {
	p := NewPreferenceProfile(SeedDefault)
	ratios := p.Ratios()

	sum := 0.0
	for _, b := range Buckets() {
		sum += ratios[b]
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("ratios sum = %v, want 1.0", sum)
	}
	if math.Abs(ratios[BucketAdult]-0.25) > 1e-9 {
		t.Errorf("uniform profile adult ratio = %v, want 0.25", ratios[BucketAdult])
	}

	p = &PreferenceProfile{Adult: 100, Event: 50, Venue: 40, Sports: 10}
	ratios = p.Ratios()
	if math.Abs(ratios[BucketAdult]-0.5) > 1e-9 {
		t.Errorf("adult ratio = %v, want 0.5", ratios[BucketAdult])
	}
}

func TestGet(t *testing.T) {
	p := &PreferenceProfile{Adult: 1, Event: 2, Venue: 3, Sports: 4}
	if p.Get(BucketAdult) != 1 || p.Get(BucketEvent) != 2 || p.Get(BucketVenue) != 3 || p.Get(BucketSports) != 4 {
		t.Error("Get returned wrong field values")
	}
	if p.Get("unknown") != 0 {
		t.Error("unknown bucket should return 0")
	}
}
