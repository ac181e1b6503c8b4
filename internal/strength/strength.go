// Package strength 评估证明页的完整程度。
package strength

import (
	"math"
	"strings"
)

// MaxScore 是全部检查项分值之和。
const MaxScore = 10

// OptimizedMessage 是所有检查项都完成后返回的下一步提示。
const OptimizedMessage = "Your page is optimized. Share it in proposals and DMs to increase response rates."

// Input 是评分所看的页面状态，由调用方负责获取。
type Input struct {
	Title                   string
	Headline                string
	Bio                     string
	Published               bool
	WorkExamples            int
	WorkExamplesWithMetrics int
	Testimonials            int
}

// Item 是一个检查项。
type Item struct {
	Label      string
	Points     int
	Earned     int
	Complete   bool
	Suggestion string
}

// Result 是 Score 的结果。
type Result struct {
	Items    []Item
	Score    int
	Percent  int
	NextStep string
}

// Score 评估七个检查项。指标文案一项按符合条件的作品
// 每个计一分，最多两分。
func Score(in Input) Result {
	metricPoints := min(in.WorkExamplesWithMetrics, 2)

	items := []Item{
		binary("Title is present", 1, strings.TrimSpace(in.Title) != "", "Add a clear page title."),
		binary("Headline is present", 1, strings.TrimSpace(in.Headline) != "", "Add a concise, outcome-focused headline."),
		binary("Bio is present", 1, strings.TrimSpace(in.Bio) != "", "Add a short bio with your niche and value."),
		binary("At least 2 work examples", 2, in.WorkExamples >= 2, "Add one more work example to improve credibility."),
		{
			Label:      "Work examples include metric text (up to 2)",
			Points:     2,
			Earned:     metricPoints,
			Complete:   metricPoints >= 2,
			Suggestion: "Add metric text to your work examples (for example, +32% conversion).",
		},
		binary("At least 2 testimonials", 2, in.Testimonials >= 2, "Add one more testimonial to strengthen trust."),
		binary("Page is published", 1, in.Published, "Publish your page when content is ready."),
	}

	result := Result{Items: items, NextStep: OptimizedMessage}
	var next *Item
	for i := range items {
		result.Score += items[i].Earned
		if items[i].Complete {
			continue
		}
		if next == nil || items[i].Points < next.Points {
			next = &items[i]
		}
	}
	if next != nil {
		result.NextStep = next.Suggestion
	}
	result.Percent = int(math.Round(float64(result.Score) / MaxScore * 100))

	return result
}

func binary(label string, points int, complete bool, suggestion string) Item {
	item := Item{Label: label, Points: points, Complete: complete, Suggestion: suggestion}
	if complete {
		item.Earned = points
	}
	return item
}
