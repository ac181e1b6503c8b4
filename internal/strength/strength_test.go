package strength

import "testing"

func completeInput() Input {
	return Input{
		Title:                   "Alex Rivera",
		Headline:                "Copywriter",
		Bio:                     "Landing pages for SaaS.",
		Published:               true,
		WorkExamples:            3,
		WorkExamplesWithMetrics: 3,
		Testimonials:            2,
	}
}

func TestScoreCompletePage(t *testing.T) {
	got := Score(completeInput())
	if got.Score != 10 || got.Percent != 100 {
		t.Fatalf("expected 10/10 and 100%%, got %d and %d%%", got.Score, got.Percent)
	}
	if got.NextStep != OptimizedMessage {
		t.Fatalf("expected optimized message, got %q", got.NextStep)
	}
}

func TestScoreMetricTextPartialCredit(t *testing.T) {
	in := completeInput()
	in.WorkExamplesWithMetrics = 1

	got := Score(in)
	metricItem := got.Items[4]
	if metricItem.Earned != 1 {
		t.Fatalf("expected 1 point for a single metric, got %d", metricItem.Earned)
	}
	if metricItem.Complete {
		t.Fatalf("metric item should stay incomplete with one qualifying example")
	}
	if got.Score != 9 || got.Percent != 90 {
		t.Fatalf("expected 9 points (90%%), got %d (%d%%)", got.Score, got.Percent)
	}
	if got.NextStep != metricItem.Suggestion {
		t.Fatalf("expected metric suggestion, got %q", got.NextStep)
	}
}

func TestScoreNextStepPrefersLowestPoints(t *testing.T) {
	in := completeInput()
	in.Testimonials = 0
	in.Published = false
	in.Headline = " "

	got := Score(in)
	if got.NextStep != "Add a concise, outcome-focused headline." {
		t.Fatalf("expected headline suggestion (first 1-point item), got %q", got.NextStep)
	}
	if got.Score != 6 {
		t.Fatalf("expected score 6, got %d", got.Score)
	}
}

func TestScoreEmptyPage(t *testing.T) {
	got := Score(Input{})
	if got.Score != 0 || got.Percent != 0 {
		t.Fatalf("expected zero score, got %d", got.Score)
	}
	if got.NextStep != "Add a clear page title." {
		t.Fatalf("expected title suggestion, got %q", got.NextStep)
	}
	if len(got.Items) != 7 {
		t.Fatalf("expected 7 items, got %d", len(got.Items))
	}
}

func TestScorePercentRounds(t *testing.T) {
	got := Score(Input{Title: "t", Headline: "h", Bio: "b"})
	if got.Percent != 30 {
		t.Fatalf("expected 30%%, got %d", got.Percent)
	}
}
