package appliance

import "testing"

func TestSnapshot_Dual(t *testing.T) {
	s, _ := newTestSession(t, VariantDual)
	mustIngest(t, s, ChannelMain, 1234.4)
	mustIngest(t, s, ChannelSub, 7.26)

	st := s.Snapshot()
	if st.Variant != "dual" || !st.PoweredOn || st.Mode != "HIDDEN" {
		t.Fatalf("unexpected header: %+v", st)
	}
	if len(st.Scales) != 2 {
		t.Fatalf("expected 2 scales, got %d", len(st.Scales))
	}
	if st.Scales[0].ID != "main" || st.Scales[0].NetDisplay != 1234 {
		t.Fatalf("unexpected main reading: %+v", st.Scales[0])
	}
	if st.Scales[1].ID != "sub" || !approx(st.Scales[1].NetDisplay, 7.3) || st.Scales[1].Capacity != 500 {
		t.Fatalf("unexpected sub reading: %+v", st.Scales[1])
	}
	if st.Timer.Display != "00:00" || st.Timer.Phase != "IDLE" {
		t.Fatalf("unexpected timer view: %+v", st.Timer)
	}
	if st.Bread.Stage != "AWAITING_BASE" || st.Bread.BaseWeight != nil || st.Bread.Guidance != "Waiting for base (Set Base)" {
		t.Fatalf("unexpected bread view: %+v", st.Bread)
	}
	if st.Diet.LastEntry != nil {
		t.Fatalf("expected empty diet view")
	}
}

func TestSnapshot_BreadOver(t *testing.T) {
	s, _ := newTestSession(t, VariantDual)
	switchTo(t, s, ModeBread)
	mustIngest(t, s, ChannelMain, 500)
	s.SetBase()
	_, _ = s.Tare(ChannelMain)
	mustIngest(t, s, ChannelMain, 900)

	b := s.Snapshot().Bread
	if b.Stage != "OVER" || b.Tone != "error" || b.Guidance != "Too much water: +25g" {
		t.Fatalf("unexpected bread view: %+v", b)
	}
	if b.TargetWater == nil || *b.TargetWater != 375 {
		t.Fatalf("unexpected target: %v", b.TargetWater)
	}
	if b.OverBy == nil || *b.OverBy != 25 {
		t.Fatalf("unexpected over-by: %v", b.OverBy)
	}
	if b.CurrentPct == nil || *b.CurrentPct != 80 {
		t.Fatalf("unexpected current pct: %v", b.CurrentPct)
	}
	if b.Yeast != "5.0" || b.Salt != "10.0" {
		t.Fatalf("dual additives: yeast=%q salt=%q", b.Yeast, b.Salt)
	}
}

func TestSnapshot_DietLastEntry(t *testing.T) {
	s, _ := newTestSession(t, VariantSingle)
	switchTo(t, s, ModeDiet)
	mustIngest(t, s, ChannelMain, 150)
	_, _ = s.AddFood("Chicken breast")

	d := s.Snapshot().Diet
	if d.LastEntry == nil || d.LastEntry.Food != "Chicken breast" || d.LastEntry.Channel != "main" {
		t.Fatalf("unexpected last entry: %+v", d.LastEntry)
	}
	if !approx(d.Totals.Cal, 247.5) {
		t.Fatalf("unexpected totals: %+v", d.Totals)
	}
}
