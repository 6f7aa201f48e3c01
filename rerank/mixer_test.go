package rerank

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/venuzlabs/feedkit/core"
)

func buildPool(counts map[core.Bucket]int) []*core.Item {
	categoryFor := map[core.Bucket]string{
		core.BucketAdult:  "escort",
		core.BucketEvent:  "event",
		core.BucketVenue:  "club",
		core.BucketSports: "sports",
	}

	var items []*core.Item
	for _, b := range core.Buckets() {
		for i := 0; i < counts[b]; i++ {
			it := core.NewItem(fmt.Sprintf("%s-%d", b, i))
			it.Category = categoryFor[b]
			items = append(items, it)
		}
	}
	return items
}

func bucketCounts(items []*core.Item) map[core.Bucket]int {
	counts := make(map[core.Bucket]int)
	for _, it := range items {
		counts[core.Bucket(it.Labels["bucket"].Value)]++
	}
	return counts
}

func TestMixerPreservesLength(t *testing.T) {
	pool := buildPool(map[core.Bucket]int{
		core.BucketAdult: 10, core.BucketEvent: 10, core.BucketVenue: 10, core.BucketSports: 10,
	})

	m := &Mixer{Locales: []LocaleRule{}}
	fctx := &core.FeedContext{
		Profile: core.NewPreferenceProfile(core.SeedDefault),
		Rand:    rand.New(rand.NewSource(1)),
	}

	out, err := m.Process(context.Background(), fctx, pool)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != len(pool) {
		t.Errorf("output length %d, want %d (mixer must not drop items)", len(out), len(pool))
	}
}

func TestMixerConvergesToProfileRatios(t *testing.T) {
	// 充足供给下，输出前缀的桶分布应贴近画像配比
	pool := buildPool(map[core.Bucket]int{
		core.BucketAdult: 60, core.BucketEvent: 60, core.BucketVenue: 60, core.BucketSports: 60,
	})

	m := &Mixer{Locales: []LocaleRule{}}
	profile := &core.PreferenceProfile{Adult: 100, Event: 50, Venue: 40, Sports: 10}
	fctx := &core.FeedContext{
		Profile: profile,
		Rand:    rand.New(rand.NewSource(42)),
	}

	out, err := m.Process(context.Background(), fctx, pool)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	prefix := out[:100]
	counts := bucketCounts(prefix)
	ratios := profile.Ratios()

	for _, b := range core.Buckets() {
		got := float64(counts[b]) / float64(len(prefix))
		if math.Abs(got-ratios[b]) > 0.05 {
			t.Errorf("bucket %s share = %.2f, want %.2f ±0.05", b, got, ratios[b])
		}
	}
}

func TestMixerExhaustedBucketFallsThrough(t *testing.T) {
	// adult 供给不足时，位置由其余桶补齐，总长度不变
	pool := buildPool(map[core.Bucket]int{
		core.BucketAdult: 2, core.BucketEvent: 20, core.BucketVenue: 20, core.BucketSports: 20,
	})

	m := &Mixer{Locales: []LocaleRule{}}
	fctx := &core.FeedContext{
		Profile: &core.PreferenceProfile{Adult: 197, Event: 1, Venue: 1, Sports: 1},
		Rand:    rand.New(rand.NewSource(3)),
	}

	out, err := m.Process(context.Background(), fctx, pool)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 62 {
		t.Errorf("output length %d, want 62", len(out))
	}

	counts := bucketCounts(out)
	if counts[core.BucketAdult] != 2 {
		t.Errorf("adult count = %d, want all 2 emitted", counts[core.BucketAdult])
	}
}

func TestMixerAdultHeavyProfileDominatesFront(t *testing.T) {
	// 85/5/5/5 画像、四桶各 5 条供给：前 5 位中 adult 至少 4 条
	pool := buildPool(map[core.Bucket]int{
		core.BucketAdult: 5, core.BucketEvent: 5, core.BucketVenue: 5, core.BucketSports: 5,
	})

	m := &Mixer{Locales: []LocaleRule{}}
	fctx := &core.FeedContext{
		Profile: &core.PreferenceProfile{Adult: 85, Event: 5, Venue: 5, Sports: 5},
		Rand:    rand.New(rand.NewSource(11)),
	}

	out, err := m.Process(context.Background(), fctx, pool)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	adults := 0
	for _, it := range out[:5] {
		if core.Bucket(it.Labels["bucket"].Value) == core.BucketAdult {
			adults++
		}
	}
	if adults < 4 {
		t.Errorf("adult in first 5 = %d, want >= 4", adults)
	}
}

func TestMixerLocaleOverride(t *testing.T) {
	pool := buildPool(map[core.Bucket]int{
		core.BucketAdult: 50, core.BucketEvent: 50, core.BucketVenue: 50, core.BucketSports: 50,
	})

	m := &Mixer{} // 默认地域规则
	fctx := &core.FeedContext{
		// 画像严重偏 adult，但访客位于优先市场内
		Profile:  &core.PreferenceProfile{Adult: 200, Event: 1, Venue: 1, Sports: 1},
		Location: &core.GeoPoint{Lat: 20.62, Lng: -105.23},
		Rand:     rand.New(rand.NewSource(9)),
	}

	out, err := m.Process(context.Background(), fctx, pool)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	prefix := out[:100]
	counts := bucketCounts(prefix)

	venueShare := float64(counts[core.BucketVenue]) / float64(len(prefix))
	eventShare := float64(counts[core.BucketEvent]) / float64(len(prefix))
	if venueShare < 0.35 {
		t.Errorf("venue share = %.2f, want >= 0.35 under locale override", venueShare)
	}
	if eventShare < 0.25 {
		t.Errorf("event share = %.2f, want >= 0.25 under locale override", eventShare)
	}
}

func TestMixerOutsideLocaleKeepsProfile(t *testing.T) {
	pool := buildPool(map[core.Bucket]int{
		core.BucketAdult: 50, core.BucketEvent: 50, core.BucketVenue: 50, core.BucketSports: 50,
	})

	m := &Mixer{}
	fctx := &core.FeedContext{
		Profile:  &core.PreferenceProfile{Adult: 200, Event: 1, Venue: 1, Sports: 1},
		Location: &core.GeoPoint{Lat: 19.43, Lng: -99.13}, // 市场范围外
		Rand:     rand.New(rand.NewSource(9)),
	}

	out, err := m.Process(context.Background(), fctx, pool)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	counts := bucketCounts(out[:50])
	adultShare := float64(counts[core.BucketAdult]) / 50.0
	if adultShare < 0.8 {
		t.Errorf("adult share = %.2f, want dominant outside locale bounds", adultShare)
	}
}

func TestGeoBoundsContains(t *testing.T) {
	b := GeoBounds{North: 20.75, South: 20.55, East: -105.15, West: -105.35}

	tests := []struct {
		name string
		pt   *core.GeoPoint
		want bool
	}{
		{name: "inside", pt: &core.GeoPoint{Lat: 20.62, Lng: -105.23}, want: true},
		{name: "north of bounds", pt: &core.GeoPoint{Lat: 20.80, Lng: -105.23}, want: false},
		{name: "east of bounds", pt: &core.GeoPoint{Lat: 20.62, Lng: -105.10}, want: false},
		{name: "nil point", pt: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.pt); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestDiversityCapsNicheRuns(t *testing.T) {
	mk := func(id, title string) *core.Item {
		it := core.NewItem(id)
		it.Title = title
		return it
	}

	items := []*core.Item{
		mk("1", "Gay night fiesta"),
		mk("2", "Gay pride party"),
		mk("3", "Gay bar crawl"), // 前两条均命中，应被丢弃
		mk("4", "Salsa social"),
		mk("5", "Gay brunch"), // 前两条为 3(已删)/4，未连续命中，保留
	}

	n := &Diversity{}
	out, err := n.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	ids := make([]string, 0, len(out))
	for _, it := range out {
		ids = append(ids, it.ID)
	}
	want := []string{"1", "2", "4", "5"}
	if len(ids) != len(want) {
		t.Fatalf("output = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("output = %v, want %v", ids, want)
		}
	}
}

func TestTopNNode(t *testing.T) {
	items := buildPool(map[core.Bucket]int{core.BucketVenue: 5})

	tests := []struct {
		name string
		n    int
		want int
	}{
		{name: "truncates", n: 3, want: 3},
		{name: "zero keeps all", n: 0, want: 5},
		{name: "larger than input keeps all", n: 10, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if len(out) != tt.want {
				t.Errorf("len = %d, want %d", len(out), tt.want)
			}
		})
	}
}
