package chunk

import "testing"

func TestClassifyContent(t *testing.T) {
	tests := []struct {
		title   string
		content string
		want    string
	}{
		{"API Reference", "no code here", TypeAPIReference},
		{"Props", "- color: string", TypeAPIReference},
		{"Usage", "```html\n<v-btn/>\n```", TypeUsageGuide},
		{"Examples", "plain prose", TypeCodeExample},
		{"Anything", "```js\ncode\n```", TypeCodeExample},
		{"Slots", "default slot", TypeSlotsReference},
		{"Events", "click handling", TypeEventsReference},
		{"Random Notes", "plain prose", TypeDocumentation},
		// Title rules beat the code-block rule.
		{"Usage Example", "```js\ncode\n```", TypeUsageGuide},
	}
	for _, tt := range tests {
		if got := ClassifyContent(tt.title, tt.content); got != tt.want {
			t.Errorf("ClassifyContent(%q, ...) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestHasCodeBlock(t *testing.T) {
	if !hasCodeBlock("```html\n<div/>\n```") {
		t.Error("fenced block not detected")
	}
	if hasCodeBlock("inline `code` only") {
		t.Error("inline code misdetected as a block")
	}
}

func TestBuildOverview(t *testing.T) {
	sec := Section{
		Component: "v-button",
		Title:     "Button",
		Content:   "A pressable thing.\nUsed everywhere.\n\n### Usage\nDo X.\n",
	}
	subs := []Subsection{{Title: "Usage", Content: "Do X."}}

	got, ok := buildOverview(sec, subs)
	if !ok {
		t.Fatal("buildOverview returned no overview")
	}
	want := "# v-button\n\nA pressable thing. Used everywhere.\n\nAvailable sections: Usage"
	if got != want {
		t.Errorf("overview = %q, want %q", got, want)
	}
}

func TestBuildOverviewNoDescription(t *testing.T) {
	sec := Section{
		Component: "v-button",
		Content:   "```html\n<v-btn/>\n```\n<template>\n",
	}
	if _, ok := buildOverview(sec, nil); ok {
		t.Error("overview built from non-describable lines")
	}
}

func TestBuildOverviewStopsAtBudget(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "This line pads the description well past the budget.\n"
	}
	got, ok := buildOverview(Section{Component: "v-card", Content: long}, nil)
	if !ok {
		t.Fatal("no overview")
	}
	// Collection stops after the line that crosses the budget.
	if len(got) > overviewMaxChars+200 {
		t.Errorf("overview length %d, want roughly the %d budget", len(got), overviewMaxChars)
	}
}
