package services

import "strings"

const DefaultThemeKey = "default"

// DomainTheme is the static tone and nudge bundle used when personalised AI
// content is unavailable.
type DomainTheme struct {
	Key    string
	Nudges []string
	Tone   string
	AIHook string
}

var domainThemes = map[string]DomainTheme{
	"technology": {
		Key: "technology",
		Nudges: []string{
			"Push one small commit to your practice repo today",
			"Read one page of official documentation before you search for answers",
			"Explain what you built this week in three sentences",
		},
		Tone:   "encouraging",
		AIHook: "Frame progress as shipping small, working increments.",
	},
	"design": {
		Key: "design",
		Nudges: []string{
			"Sketch three variations before choosing one",
			"Ask one person for feedback on your latest screen",
			"Save one design you admire and note why it works",
		},
		Tone:   "playful",
		AIHook: "Frame progress as iterating on visible artifacts.",
	},
	"business": {
		Key: "business",
		Nudges: []string{
			"Summarise one industry article in a single slide",
			"Write down the metric this week's work moves",
			"Share one insight with a peer and ask for a counterpoint",
		},
		Tone:   "focused",
		AIHook: "Frame progress in terms of outcomes and measurable impact.",
	},
	"healthcare": {
		Key: "healthcare",
		Nudges: []string{
			"Review one guideline or standard relevant to your goal",
			"Note one way today's learning helps a patient",
			"Block thirty minutes for uninterrupted study",
		},
		Tone:   "supportive",
		AIHook: "Frame progress around care quality and reliability.",
	},
	"data": {
		Key: "data",
		Nudges: []string{
			"Clean one small dataset end to end",
			"Write one query and explain its result in plain words",
			"Chart one number you track and look for a pattern",
		},
		Tone:   "curious",
		AIHook: "Frame progress as asking sharper questions of data.",
	},
	DefaultThemeKey: {
		Key: DefaultThemeKey,
		Nudges: []string{
			"Spend twenty focused minutes on this milestone today",
			"Write down one thing you learned and one open question",
			"Tell someone about your goal for this week",
		},
		Tone:   "encouraging",
		AIHook: "Frame progress as steady, consistent practice.",
	},
}

// LookupTheme returns the theme for a field of interest, falling back to the
// default theme for unknown fields.
func LookupTheme(fieldOfInterest string) DomainTheme {
	key := strings.ToLower(strings.TrimSpace(fieldOfInterest))
	if t, ok := domainThemes[key]; ok {
		return cloneTheme(t)
	}
	return cloneTheme(domainThemes[DefaultThemeKey])
}

func cloneTheme(t DomainTheme) DomainTheme {
	t.Nudges = append([]string(nil), t.Nudges...)
	return t
}
